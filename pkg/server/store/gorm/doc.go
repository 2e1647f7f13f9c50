// Package gorm implements the store interfaces on postgres through gorm.
package gorm
