// Package inventory tracks how many devices of each catalog option are on hand
// and flags options that need restocking.
package inventory
