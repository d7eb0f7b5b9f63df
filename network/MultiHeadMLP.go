// Package network implements neural network value estimators built on
// Gorgonia computational graphs.
package network

import (
	"fmt"

	"github.com/pkg/errors"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/samuelfneumann/gamelearn/agent"
	"github.com/samuelfneumann/gamelearn/utils/floatutils"
)

// predictor is a forward-only copy of a MultiHeadMLP for a fixed input
// batch size
type predictor struct {
	g          *G.ExprGraph
	input      *G.Node
	layers     []*fcLayer
	prediction *G.Node
	predVal    G.Value
	vm         G.VM
	batchSize  int

	// Whether the weights lag behind those of the training graph
	stale bool
}

// MultiHeadMLP implements a multi-layered perceptron with multiple
// output nodes, one for each action whose value should be predicted.
//
// The parameters of the MLP live in a training graph which computes the
// mean squared error between the predicted values of taken actions and
// their update targets. Predictions are computed by separate forward
// graphs, one for single states and one for full batches, whose weights
// are refreshed from the training graph before they are next used.
type MultiHeadMLP struct {
	numInputs  int
	numOutputs int
	batchSize  int

	hiddenSizes []int
	biases      []bool
	activations []*Activation

	// Training graph
	train      *predictor
	learnables G.Nodes
	targets    *G.Node
	selected   *G.Node // One-hot encoding of the actions taken
	loss       *G.Node
	lossVal    G.Value
	solver     G.Solver

	predictors map[int]*predictor
}

// NewMultiHeadMLP creates and returns a new multi-layered perceptron
// that has multiple output nodes. The number of outputs nodes is equal
// to outputs.
//
// The MLP has number of layers equal to len(hiddenSizes) + 1. A final
// layer is always added such that given any input, the output will
// be outputs. The final layer also contains a bias unit, and bias units
// for each additional hidden layer is specified by biases. The final
// layer will contain no activations, and the activations of additional
// hidden layers is specified by activations. The parameter init
// determines the weight initialization scheme.
//
// The function works such that for index i, hiddenSizes[i] is the
// number of nodes in hidden layer i; biases[i] is true if the
// hidden layer will contain a bias unit and false otherwise; and
// activations[i] is the activation function for hidden layer i.
//
// Gradient steps are taken on batches of exactly batch samples with
// solver. If solver is nil, the MLP can predict but not learn.
func NewMultiHeadMLP(features, outputs, batch int, hiddenSizes []int,
	biases []bool, activations []*Activation, init G.InitWFn,
	solver G.Solver) (*MultiHeadMLP, error) {
	if features <= 0 || outputs <= 0 || batch <= 0 {
		return nil, errors.Errorf("newMultiHeadMLP: features (%v), outputs "+
			"(%v) and batch size (%v) must be > 0", features, outputs, batch)
	}

	// Ensure we have one activation per layer
	if len(hiddenSizes) != len(activations) {
		msg := "newMultiHeadMLP: invalid number of activations" +
			"\n\twant(%d)\n\thave(%d)"
		return nil, errors.Errorf(msg, len(hiddenSizes), len(activations))
	}

	// Ensure one bias bool per layer
	if len(hiddenSizes) != len(biases) {
		msg := "newMultiHeadMLP: invalid number of biases\n\twant(%d)" +
			"\n\thave(%d)"
		return nil, errors.Errorf(msg, len(hiddenSizes), len(biases))
	}

	for i, size := range hiddenSizes {
		if size <= 0 {
			return nil, errors.Errorf("newMultiHeadMLP: hidden layer %d "+
				"must have > 0 units (have %d)", i, size)
		}
		if activations[i] == nil {
			return nil, errors.Errorf("newMultiHeadMLP: hidden layer %d "+
				"has no activation", i)
		}
	}
	if init == nil {
		return nil, errors.New("newMultiHeadMLP: nil weight initializer")
	}

	net := &MultiHeadMLP{
		numInputs:   features,
		numOutputs:  outputs,
		batchSize:   batch,
		hiddenSizes: append([]int(nil), hiddenSizes...),
		biases:      append([]bool(nil), biases...),
		activations: append([]*Activation(nil), activations...),
		solver:      solver,
		predictors:  make(map[int]*predictor),
	}

	if err := net.buildTrainingGraph(init); err != nil {
		return nil, errors.Wrap(err, "newMultiHeadMLP")
	}

	for _, size := range []int{1, batch} {
		if _, ok := net.predictors[size]; ok {
			continue
		}
		p, err := net.newPredictor(size, G.Zeroes())
		if err != nil {
			return nil, errors.Wrap(err, "newMultiHeadMLP")
		}
		p.vm = G.NewTapeMachine(p.g)
		p.stale = true
		net.predictors[size] = p
	}

	return net, nil
}

// layerSpec returns the sizes, biases and activations of every layer,
// including the final linear layer which predicts the output heads
func (e *MultiHeadMLP) layerSpec() ([]int, []bool, []*Activation) {
	sizes := append(append([]int(nil), e.hiddenSizes...), e.numOutputs)
	biases := append(append([]bool(nil), e.biases...), true)
	activations := append(append([]*Activation(nil), e.activations...),
		Identity())
	return sizes, biases, activations
}

// newPredictor builds a forward graph of the MLP taking batchSize
// states as input. The graph is not yet compiled.
func (e *MultiHeadMLP) newPredictor(batchSize int,
	init G.InitWFn) (*predictor, error) {
	g := G.NewGraph()

	// Set up the input node
	input := G.NewMatrix(g, tensor.Float64,
		G.WithShape(batchSize, e.numInputs), G.WithName("input"),
		G.WithInit(G.Zeroes()))

	sizes, biases, activations := e.layerSpec()
	layers := addfcLayers(g, e.numInputs, sizes, biases, activations, init)

	pred := input
	var err error
	for i, l := range layers {
		if pred, err = l.fwd(pred); err != nil {
			msg := "newPredictor: could not compute forward pass of " +
				"layer %v: %v"
			return nil, errors.Errorf(msg, i, err)
		}
	}

	p := &predictor{
		g:          g,
		input:      input,
		layers:     layers,
		prediction: pred,
		batchSize:  batchSize,
	}
	G.Read(p.prediction, &p.predVal)

	return p, nil
}

// learnables returns the learnable nodes of the predictor
func (p *predictor) learnables() G.Nodes {
	learnables := make(G.Nodes, 0, 2*len(p.layers))
	for _, l := range p.layers {
		learnables = append(learnables, l.learnables()...)
	}
	return learnables
}

// buildTrainingGraph builds the graph which computes the loss
//
//	L = 1/N ∑ᵢ (yᵢ - Q(sᵢ, aᵢ))²
//
// over a batch of N states sᵢ, taken actions aᵢ and update targets yᵢ,
// together with its gradient with respect to the MLP's weights.
func (e *MultiHeadMLP) buildTrainingGraph(init G.InitWFn) error {
	train, err := e.newPredictor(e.batchSize, init)
	if err != nil {
		return errors.Wrap(err, "buildTrainingGraph")
	}

	g := train.g
	e.targets = G.NewVector(g, tensor.Float64, G.WithShape(e.batchSize),
		G.WithName("targets"), G.WithInit(G.Zeroes()))
	e.selected = G.NewMatrix(g, tensor.Float64,
		G.WithShape(e.batchSize, e.numOutputs), G.WithName("actionSelected"),
		G.WithInit(G.Zeroes()))

	// Compute the values of the selected actions
	selectedValues := G.Must(G.HadamardProd(train.prediction, e.selected))
	selectedValues = G.Must(G.Sum(selectedValues, 1))

	// Compute the Mean Squared TD error
	losses := G.Must(G.Sub(e.targets, selectedValues))
	losses = G.Must(G.Square(losses))
	e.loss = G.Must(G.Mean(losses))
	G.Read(e.loss, &e.lossVal)

	e.learnables = train.learnables()
	if _, err := G.Grad(e.loss, e.learnables...); err != nil {
		return errors.Wrap(err, "buildTrainingGraph: could not compute "+
			"gradient")
	}

	train.vm = G.NewTapeMachine(g, G.BindDualValues(e.learnables...))
	e.train = train
	return nil
}

// Predict returns the predicted action values of each state in states,
// in row major order. The states must be given in row major order and
// there must be either one state or BatchSize states.
func (e *MultiHeadMLP) Predict(states []float64) ([]float64, error) {
	if len(states)%e.numInputs != 0 {
		return nil, errors.Errorf("predict: invalid number of inputs "+
			"\n\twant(multiple of %v) \n\thave(%v)", e.numInputs,
			len(states))
	}
	batch := len(states) / e.numInputs

	p, ok := e.predictors[batch]
	if !ok {
		return nil, errors.Errorf("predict: cannot predict a batch of %v "+
			"states, only 1 or %v", batch, e.batchSize)
	}

	if p.stale {
		if err := e.refresh(p); err != nil {
			return nil, errors.Wrap(err, "predict")
		}
	}

	if err := setMatrix(p.input, states); err != nil {
		return nil, errors.Wrap(err, "predict")
	}
	defer p.vm.Reset()
	if err := p.vm.RunAll(); err != nil {
		return nil, errors.Wrap(err, "predict")
	}

	values := p.predVal.Data().([]float64)
	return append([]float64(nil), values...), nil
}

// ApplyGradient takes a single gradient step on the mean squared error
// between the predicted values of the actions taken in states and
// targets, returning the loss before the step. If the loss is not
// finite, the step is not taken and agent.ErrNonFiniteLoss is returned.
func (e *MultiHeadMLP) ApplyGradient(states []float64, actions []int,
	targets []float64) (float64, error) {
	if e.solver == nil {
		return 0, errors.New("applyGradient: no solver")
	}
	if len(states) != e.batchSize*e.numInputs {
		return 0, errors.Errorf("applyGradient: invalid number of inputs "+
			"\n\twant(%v) \n\thave(%v)", e.batchSize*e.numInputs, len(states))
	}
	if len(actions) != e.batchSize || len(targets) != e.batchSize {
		return 0, errors.Errorf("applyGradient: need %v actions and "+
			"targets (have %v, %v)", e.batchSize, len(actions), len(targets))
	}

	selected := make([]float64, e.batchSize*e.numOutputs)
	for i, a := range actions {
		if a < 0 || a >= e.numOutputs {
			return 0, errors.Errorf("applyGradient: action %v out of range "+
				"[0, %v)", a, e.numOutputs)
		}
		selected[i*e.numOutputs+a] = 1.0
	}

	if err := setMatrix(e.train.input, states); err != nil {
		return 0, errors.Wrap(err, "applyGradient")
	}
	if err := setMatrix(e.selected, selected); err != nil {
		return 0, errors.Wrap(err, "applyGradient")
	}
	if err := setMatrix(e.targets, targets); err != nil {
		return 0, errors.Wrap(err, "applyGradient")
	}

	defer e.train.vm.Reset()
	if err := e.train.vm.RunAll(); err != nil {
		return 0, errors.Wrap(err, "applyGradient")
	}

	loss := e.lossVal.Data().(float64)
	if !floatutils.Finite(loss) {
		return loss, errors.Wrapf(agent.ErrNonFiniteLoss, "applyGradient: "+
			"loss %v", loss)
	}

	if err := e.solver.Step(G.NodesToValueGrads(e.learnables)); err != nil {
		return loss, errors.Wrap(err, "applyGradient: could not step solver")
	}
	e.markStale()

	return loss, nil
}

// Parameters returns a copy of the weights of the MLP. Layer weights
// are given in row major order, each followed by the layer's bias if it
// has one.
func (e *MultiHeadMLP) Parameters() agent.Parameters {
	params := make(agent.Parameters, len(e.learnables))
	for i, node := range e.learnables {
		weights := node.Value().(*tensor.Dense).Data().([]float64)
		params[i] = append([]float64(nil), weights...)
	}
	return params
}

// SetParameters sets the weights of the MLP, which must be laid out as
// returned by Parameters.
func (e *MultiHeadMLP) SetParameters(params agent.Parameters) error {
	if len(params) != len(e.learnables) {
		return errors.Errorf("setParameters: invalid number of parameter "+
			"tensors \n\twant(%v) \n\thave(%v)", len(e.learnables),
			len(params))
	}
	for i, node := range e.learnables {
		if size := node.Shape().TotalSize(); len(params[i]) != size {
			return errors.Errorf("setParameters: invalid size of parameter "+
				"%v \n\twant(%v) \n\thave(%v)", node.Name(), size,
				len(params[i]))
		}
	}

	for i, node := range e.learnables {
		weights := tensor.New(
			tensor.WithShape(node.Shape().Clone()...),
			tensor.WithBacking(append([]float64(nil), params[i]...)),
		)
		if err := G.Let(node, weights); err != nil {
			return errors.Wrapf(err, "setParameters: %v", node.Name())
		}
	}
	e.markStale()

	return nil
}

// refresh copies the weights of the training graph into p
func (e *MultiHeadMLP) refresh(p *predictor) error {
	for i, node := range p.learnables() {
		weights := e.learnables[i].Value().(*tensor.Dense)
		if err := G.Let(node, weights.Clone().(*tensor.Dense)); err != nil {
			return errors.Wrapf(err, "refresh: %v", node.Name())
		}
	}
	p.stale = false
	return nil
}

func (e *MultiHeadMLP) markStale() {
	for _, p := range e.predictors {
		p.stale = true
	}
}

// Clone returns an independent MLP with the same architecture and
// weights. The clone has no solver: it predicts but cannot learn, as is
// needed for a target estimator.
func (e *MultiHeadMLP) Clone() (*MultiHeadMLP, error) {
	clone, err := NewMultiHeadMLP(e.numInputs, e.numOutputs, e.batchSize,
		e.hiddenSizes, e.biases, e.activations, G.Zeroes(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "clone")
	}
	if err := clone.SetParameters(e.Parameters()); err != nil {
		return nil, errors.Wrap(err, "clone")
	}
	return clone, nil
}

// Close releases the resources held by the MLP's machines
func (e *MultiHeadMLP) Close() error {
	for _, p := range e.predictors {
		if err := p.vm.Close(); err != nil {
			return err
		}
	}
	return e.train.vm.Close()
}

// BatchSize returns the batch size of gradient steps
func (e *MultiHeadMLP) BatchSize() int {
	return e.batchSize
}

// Features returns the number of features in a single observation
// vector that the MLP takes as input.
func (e *MultiHeadMLP) Features() int {
	return e.numInputs
}

// NumActions returns the number of outputs from the network
func (e *MultiHeadMLP) NumActions() int {
	return e.numOutputs
}

func (e *MultiHeadMLP) String() string {
	_, _, activations := e.layerSpec()
	return fmt.Sprintf("MultiHeadMLP{in: %v, hidden: %v, out: %v, "+
		"activations: %v}", e.numInputs, e.hiddenSizes, e.numOutputs,
		activations)
}

// setMatrix sets the value of an input node
func setMatrix(node *G.Node, values []float64) error {
	if size := node.Shape().TotalSize(); len(values) != size {
		return errors.Errorf("invalid number of values for %v "+
			"\n\twant(%v) \n\thave(%v)", node.Name(), size, len(values))
	}
	t := tensor.New(
		tensor.WithBacking(values),
		tensor.WithShape(node.Shape().Clone()...),
	)
	return G.Let(node, t)
}

var _ agent.ValueEstimator = &MultiHeadMLP{}
