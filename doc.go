// Package imitation contains the shared pieces of a
// reward-learning setup: reward function contracts,
// replay buffer views, state entropy estimation, and
// running normalization.
//
// Algorithms built on top of these pieces live in
// sub-packages, such as pebble.
package imitation
