package cli

var (
	PrintIndexDiff = printIndexDiff
	GetIndexConfig = getIndexConfig
)
