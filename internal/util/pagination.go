package util

const (
	defaultCount = 10
	maxCount     = 100
)

// Calculate turns a 1-based page number and page size into offset/limit.
func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > maxCount {
		size = defaultCount
	}
	from = (page - 1) * size
	return from, size
}

// Window clamps an offset/count pair taken from a query string.
func Window(from, count int) (offset, limit int) {
	if from < 0 {
		from = 0
	}
	if count <= 0 || count > maxCount {
		count = defaultCount
	}
	return from, count
}
