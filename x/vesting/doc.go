/*
Package vesting implements linear vesting schedules with a cliff.

A schedule is created by the administrator for a beneficiary. Nothing can
be claimed before the cliff. After the cliff, the vested amount grows
linearly with the time elapsed since the schedule start until the whole
amount is vested at the end of the schedule duration. The beneficiary can
claim the vested but not yet claimed part at any time.
*/
package vesting
