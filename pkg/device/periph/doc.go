// Package periph binds the hat and host peripherals to periph.io drivers.
package periph
