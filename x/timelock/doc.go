/*
Package timelock implements time locks.

A lock holds an amount on behalf of its owner until the unlock time. Once
the unlock time is reached the owner can claim it. A lock can be claimed
only once, either by its owner or by the emergency unlock procedure.
*/
package timelock
