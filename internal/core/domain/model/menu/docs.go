// Package menu provides the catalog entity of the vendor's shop.
//
// An Item is keyed by its name, compared case-insensitively, and carries a positive
// decimal price, a pricing unit and an availability flag. Items are created and updated
// only through the vendor's menu update; they are never deleted, only marked unavailable.
//
// Orders never hold a pointer to an Item. They copy name, price and unit when they are
// placed, so later edits leave past orders untouched.
package menu
