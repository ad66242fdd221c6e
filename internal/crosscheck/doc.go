// Package crosscheck runs the same seeded operand workload through several
// independent implementations ("oracles") of an operation and verifies that
// they all produce bit-identical results.
//
// Oracles cover the engine's forced strategies (schoolbook, Karatsuba,
// Toom-Cook-3, Knuth, Burnikel-Ziegler), its threshold-driven dispatch, the
// standard library's math/big, and GMP when built with the gmp tag. Every
// oracle output is encoded canonically and digested with xxhash, so
// disagreement is detected without keeping results in memory.
package crosscheck
