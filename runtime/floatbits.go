package hsdt

import "math"

func bitsToFloat(bits uint64) float64 { return math.Float64frombits(bits) }

func floatToBits(f float64) uint64 { return math.Float64bits(f) }
