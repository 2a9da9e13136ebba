package entropy

// effectiveComplexity mirrors entropy.rs's compute_effective_complexity:
// derives a "simplicity" signal from how low entropy and how repetitive
// the code is, modulated by branch similarity, then inverts it back into
// a 0..1 complexity score.
func effectiveComplexity(tokenEntropy, repetition, similarity float64) float64 {
	baseSimplicity := (1.0 - tokenEntropy) * repetition
	var simplicityFactor float64
	if similarity > 0.0 {
		simplicityFactor = baseSimplicity * (0.5 + similarity*0.5)
	} else {
		simplicityFactor = baseSimplicity * 0.7
	}
	return 1.0 - (simplicityFactor * 0.9)
}

// graduatedDampening is entropy.rs's calculate_graduated_dampening: a
// linear falloff applied only once `value` crosses `threshold` (in the
// direction `excessMode` selects), capped at maxReduction.
func graduatedDampening(value, threshold, rng, maxReduction float64, excessMode bool) float64 {
	inRange := value < threshold
	if excessMode {
		inRange = value > threshold
	}
	if !inRange {
		return 1.0
	}

	var ratio float64
	if excessMode {
		ratio = (value - threshold) / rng
	} else {
		ratio = (threshold - value) / rng
	}

	reduction := ratio * maxReduction
	if reduction > maxReduction {
		reduction = maxReduction
	}
	return 1.0 - reduction
}

// dampeningFactor composes the three graduated factors into the final
// multiplier applied to raw complexity: high pattern repetition, low token
// entropy, and high branch similarity each pull it down independently,
// grounded in entropy.rs's compute_dampening_factor. The floor is raised
// from the original's 0.7 to 0.5 to match the [0.5, 1.0] bound this
// project documents as the dampening invariant.
func dampeningFactor(tokenEntropy, repetition, similarity, patternThreshold float64) float64 {
	repetitionFactor := graduatedDampening(repetition, patternThreshold, 1.0, 0.20, true)
	entropyFactor := graduatedDampening(tokenEntropy, 0.4, 0.4, 0.15, false)
	branchFactor := graduatedDampening(similarity, 0.8, 0.2, 0.25, true)

	result := repetitionFactor * entropyFactor * branchFactor
	if result < 0.5 {
		return 0.5
	}
	return result
}
