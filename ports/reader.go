package ports

import (
	"dqlens/domain/dataset"
)

// DatasetReader loads tabular data from some source into a dataset
type DatasetReader interface {
	Read() (*dataset.Dataset, error)
}
