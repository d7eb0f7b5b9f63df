package agent

import "github.com/pkg/errors"

// ErrNonFiniteLoss is returned by a ValueEstimator when the loss of a
// gradient step is NaN or infinite. The step is not applied.
var ErrNonFiniteLoss = errors.New("non-finite loss")
