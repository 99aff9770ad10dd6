// File: utils/constants.go
package utils

// PropertyCachePrefix is the prefix used for Redis property cache keys.
const PropertyCachePrefix = "property:"
