// Package hat coordinates the tasks of the motor controller.
//
// Three tasks run for the life of the process. The sampling task publishes
// the joystick and buttons into atomics. The transport task reads those
// atomics into a StatusFrame, exchanges it with the host for a
// ControlFrame and queues the received frame. The dispatch task drains
// the queue in arrival order and drives the plate and the display.
package hat
