// Package host drives the hat from the host side of the link.
package host
