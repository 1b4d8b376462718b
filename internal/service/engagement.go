package service

// Default engagement weights. A comment costs the viewer more than a like,
// and a like more than a view.
const (
	DefaultViewWeight    = 1
	DefaultLikeWeight    = 5
	DefaultCommentWeight = 10
)

// Weights scores engagement for ranking only; the result is not a
// user-facing metric.
type Weights struct {
	View    int64
	Like    int64
	Comment int64
}

// DefaultWeights returns the standard 1/5/10 weighting.
func DefaultWeights() Weights {
	return Weights{View: DefaultViewWeight, Like: DefaultLikeWeight, Comment: DefaultCommentWeight}
}

// Score computes views*View + likes*Like + comments*Comment. Negative counts
// are treated as zero so the score stays monotonic in every argument.
func (w Weights) Score(views, likes, comments int64) int64 {
	return nonNeg(views)*w.View + nonNeg(likes)*w.Like + nonNeg(comments)*w.Comment
}

func nonNeg(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
