package behaviour

import "GopherPick/internal/scene"

// PickBehaviour is user code driven by the engine loop. OnPick runs after
// every click, hit or miss.
type PickBehaviour interface {
	Start()
	Update(deltaTime float64)
	OnPick(result scene.PickResult)
}

type BehaviourWrapper struct {
	Behaviour PickBehaviour
	started   bool
}

type BehaviourManager struct {
	behaviours []BehaviourWrapper
}

var GlobalBehaviourManager = NewBehaviourManager()

func NewBehaviourManager() *BehaviourManager {
	return &BehaviourManager{}
}

func (m *BehaviourManager) Add(behaviour PickBehaviour) {
	m.behaviours = append(m.behaviours, BehaviourWrapper{Behaviour: behaviour, started: false})
}

func (m *BehaviourManager) Remove(behaviour PickBehaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].Behaviour == behaviour {
			// Remove by swapping with last element and truncating
			m.behaviours[i] = m.behaviours[len(m.behaviours)-1]
			m.behaviours = m.behaviours[:len(m.behaviours)-1]
			return
		}
	}
}

// Clear removes all behaviours from the manager
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
}

func (m *BehaviourManager) Len() int {
	return len(m.behaviours)
}

func (m *BehaviourManager) UpdateAll(deltaTime float64) {
	for i := range m.behaviours {
		m.start(i)
		m.behaviours[i].Behaviour.Update(deltaTime)
	}
}

func (m *BehaviourManager) DispatchPick(result scene.PickResult) {
	for i := range m.behaviours {
		m.start(i)
		m.behaviours[i].Behaviour.OnPick(result)
	}
}

func (m *BehaviourManager) start(i int) {
	if !m.behaviours[i].started {
		m.behaviours[i].Behaviour.Start()
		m.behaviours[i].started = true
	}
}
