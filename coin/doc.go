// Package coin provides the value amount type used by all vault entities.
package coin
