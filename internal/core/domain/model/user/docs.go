// Package user models portal accounts: customers and back-office staff.
package user
