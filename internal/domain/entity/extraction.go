package entity

// ExtractionOutcome is the result of the best-effort pose extraction stage.
// A warning never stops a run; the skeleton path is carried either way.
type ExtractionOutcome struct {
	SkeletonPath string
	Warning      error
}

func ExtractionSucceeded(path string) ExtractionOutcome {
	return ExtractionOutcome{SkeletonPath: path}
}

func ExtractionWarning(path string, reason error) ExtractionOutcome {
	return ExtractionOutcome{SkeletonPath: path, Warning: reason}
}

func (o ExtractionOutcome) Succeeded() bool {
	return o.Warning == nil
}
