package event

var typeToName = map[EventType]string{
	EventNone:               "None",
	EventAddBox:             "AddBox",
	EventAddCircle:          "AddCircle",
	EventAddFixedJoint:      "AddFixedJoint",
	EventAddHinge:           "AddHinge",
	EventAddLaser:           "AddLaser",
	EventDespawn:            "Despawn",
	EventSelect:             "Select",
	EventSelectUnderPointer: "SelectUnderPointer",
	EventPan:                "Pan",
	EventMove:               "Move",
	EventRotate:             "Rotate",
	EventDrag:               "Drag",
	EventFreeze:             "Freeze",
	EventUnfreeze:           "Unfreeze",
	EventNotImplemented:     "NotImplemented",
}

var nameToType = func() map[string]EventType {
	m := make(map[string]EventType, len(typeToName))
	for t, n := range typeToName {
		m[n] = t
	}
	return m
}()

// String returns the registered name or "Unknown"
func (t EventType) String() string {
	if n, ok := typeToName[t]; ok {
		return n
	}
	return "Unknown"
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}
