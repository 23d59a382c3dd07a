package anndataset

import "fmt"

// Metric identifies the distance or similarity function under which ground
// truth was computed. One query set may carry ground truth for several
// metrics simultaneously.
type Metric uint8

const (
	// MetricEuclidean ranks neighbors by increasing L2 distance.
	MetricEuclidean Metric = iota + 1
	// MetricInnerProduct ranks neighbors by decreasing inner product.
	MetricInnerProduct
	// MetricCosine ranks neighbors by decreasing cosine similarity.
	MetricCosine
)

const (
	metricLabelEuclidean    = "euclidean"
	metricLabelInnerProduct = "inner_product"
	metricLabelCosine       = "cosine"
)

// String returns the stable label of the metric, as stored in files.
func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return metricLabelEuclidean
	case MetricInnerProduct:
		return metricLabelInnerProduct
	case MetricCosine:
		return metricLabelCosine
	default:
		return fmt.Sprintf("metric(%d)", uint8(m))
	}
}

// ParseMetric maps a stored metric label back to its Metric value.
// Unrecognized labels fail with ErrUnsupportedFormat; the codec never
// guesses a metric.
func ParseMetric(label string) (Metric, error) {
	switch label {
	case metricLabelEuclidean:
		return MetricEuclidean, nil
	case metricLabelInnerProduct:
		return MetricInnerProduct, nil
	case metricLabelCosine:
		return MetricCosine, nil
	default:
		return 0, fmt.Errorf("%w: unknown metric label %q", ErrUnsupportedFormat, label)
	}
}
