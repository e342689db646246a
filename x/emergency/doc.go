/*
Package emergency implements the forced release of time locks.

Members of the emergency committee approve the release of a lock. Once
the number of distinct approvals reaches the configured threshold, anyone
can release the lock before its unlock time. A released lock is claimed
and cannot be claimed again by its owner.
*/
package emergency
