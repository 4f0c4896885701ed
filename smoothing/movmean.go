package smoothing

// movingMean averages every sample with the window/2 samples on either side.
// The series is padded with its first and last value so the output has the
// same length as the input.
func movingMean(data []float64, window int) []float64 {
	half := window / 2
	last := len(data) - 1
	out := make([]float64, len(data))
	for i := range data {
		var sum float64
		for j := i - half; j <= i+half; j++ {
			switch {
			case j < 0:
				sum += data[0]
			case j > last:
				sum += data[last]
			default:
				sum += data[j]
			}
		}
		out[i] = sum / float64(window)
	}
	return out
}
