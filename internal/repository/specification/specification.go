package specification

import "gorm.io/gorm"

// Specification is a composable query fragment; repositories fold any
// number of them into a single GORM chain.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
