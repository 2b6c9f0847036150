// Package internalcheck provides internal validation and testing utilities.
//
// This package contains structural checks the opcda-go library runs over its
// own source tree, such as enforcing that the native call boundary stays
// contained. It is not intended for external use and the API may change
// without notice.
package internalcheck
