package eventbus

type KnowledgeEventType string

const (
	KnowledgeEventSubmitted       KnowledgeEventType = "Submitted"
	KnowledgeEventApproved        KnowledgeEventType = "Approved"
	KnowledgeEventRejected        KnowledgeEventType = "Rejected"
	KnowledgeEventPromptActivated KnowledgeEventType = "PromptActivated"
)

// Knowledge item kinds carried on events.
const (
	KindInstruction = "instruction"
	KindSuggestion  = "suggestion"
	KindPrompt      = "prompt"
)

type KnowledgeEvent struct {
	Type    KnowledgeEventType
	Kind    string // instruction, suggestion, prompt
	ItemID  uint
	Actor   string // submitter or moderator identity
	Status  string
}

type KnowledgeEventHandler = Handler[KnowledgeEvent]
type KnowledgeEventBus = Bus[KnowledgeEventType, KnowledgeEvent]

func NewKnowledgeEventBus() *KnowledgeEventBus {
	return NewBus[KnowledgeEventType, KnowledgeEvent]()
}
