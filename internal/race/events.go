package race

type EventType int

const (
	EventRaceStart EventType = iota
	EventCheckpoint
	EventLap
	EventFinish
	EventWallHit
	EventCarHit
	EventRecovery
	EventRescue
)

func (t EventType) String() string {
	switch t {
	case EventRaceStart:
		return "race_start"
	case EventCheckpoint:
		return "checkpoint"
	case EventLap:
		return "lap"
	case EventFinish:
		return "finish"
	case EventWallHit:
		return "wall_hit"
	case EventCarHit:
		return "car_hit"
	case EventRecovery:
		return "recovery"
	case EventRescue:
		return "rescue"
	}
	return "unknown"
}

type Event struct {
	Type    EventType
	Tick    int // race tick
	Vehicle int
	Other   int // second vehicle for EventCarHit, -1 otherwise
	X, Y    int // pixels
	Data    int // lap number or lap time, depending on Type
}

type EventHandler func(Event)

// EventBus delivers events synchronously on the simulation goroutine.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := EventRaceStart; t <= EventRescue; t++ {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
