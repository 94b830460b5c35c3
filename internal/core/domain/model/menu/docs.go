// Package menu holds the catalog side of the domain: dinner types, the menu
// items they bundle, and the serving styles that scale their price.
package menu
