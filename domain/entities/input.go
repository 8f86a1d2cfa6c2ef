package entities

// KeyEvent is a scheduled or observed key transition.
type KeyEvent struct {
	Frame int   `json:"frame" yaml:"frame"`
	Code  int32 `json:"code" yaml:"code"`
	Down  bool  `json:"down" yaml:"down"`
}

// FrameSample captures the getter values observed after a tick.
type FrameSample struct {
	Values map[string]float64 `json:"values,omitempty"`
	Frame  int                `json:"frame"`
	Time   float64            `json:"time"`
}
