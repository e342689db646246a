// Package vaulttest provides mocks and helpers for testing vault extensions.
package vaulttest
