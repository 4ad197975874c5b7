package control

// Default dead band, in degrees.
const (
	DefaultLow  Temperature = 30
	DefaultHigh Temperature = 35
)

// Thresholds bound the dead band. Inside [Low, High] the heater keeps
// whatever state it had.
type Thresholds struct {
	Low  Temperature
	High Temperature
}

// DefaultThresholds returns the stock dead band.
func DefaultThresholds() Thresholds {
	return Thresholds{Low: DefaultLow, High: DefaultHigh}
}

// Decide picks the hysteresis branch for temp.
func (t Thresholds) Decide(temp Temperature) Decision {
	switch {
	case temp > t.High:
		return DecisionShutdown
	case temp < t.Low:
		return DecisionActivate
	default:
		return DecisionHold
	}
}

// Step is the pure transition function: given a temperature and the previous
// heater state it returns the next state and the outputs for this cycle.
func Step(temp Temperature, previous HeaterState, t Thresholds) (HeaterState, Output) {
	switch t.Decide(temp) {
	case DecisionShutdown:
		return HeaterOff, Output{}
	case DecisionActivate:
		return HeaterOn, Output{Heater: true, Indicators: Indicators{Active: true}}
	default:
		on := bool(previous)
		return previous, Output{Heater: on, Indicators: Indicators{Ready: true, Active: on}}
	}
}

// Controller owns the heater state and threads it through Step.
// Not safe for concurrent use; the control loop is its only writer.
type Controller struct {
	thresholds Thresholds
	state      HeaterState
}

// NewController creates a controller with the heater off.
func NewController(t Thresholds) *Controller {
	return &Controller{thresholds: t}
}

// Step advances the controller by one cycle.
func (c *Controller) Step(temp Temperature) (Decision, Output) {
	decision := c.thresholds.Decide(temp)
	next, out := Step(temp, c.state, c.thresholds)
	c.state = next
	return decision, out
}

// State returns the current heater state.
func (c *Controller) State() HeaterState {
	return c.state
}

// Thresholds returns the dead band the controller was built with.
func (c *Controller) Thresholds() Thresholds {
	return c.thresholds
}
