// Package models contains the GORM persistence models behind the ledger
// repositories. Domain entities stay free of ORM tags; each model converts
// to and from its entity with ToDomain / FromDomain.
//
// Money columns are BIGINT whole dong. Item rows carry a position so that
// documents read back in the order they were written.
package models
