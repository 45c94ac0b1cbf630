package constant

// Conversation roles as stored in turn history and interaction logs.
const (
	TurnRoleUser  = "user"
	TurnRoleModel = "model"
)

// Agent identifiers. The routing state machine only ever holds one of these.
const (
	AgentReceptionist = "receptionist"
	AgentClinical     = "clinical"
)

// Routing markers. Role policies instruct the model to emit these on their own
// line; the policy extracts them into the structured routing signal and strips
// them from the user-facing text. The state machine never parses prose.
const (
	MarkerRouteToClinical     = "ROUTE_TO_CLINICAL:"
	MarkerRouteToReceptionist = "ROUTE_TO_RECEPTIONIST"
	MarkerLookupPatient       = "LOOKUP_PATIENT:"
)

// Generation temperatures. The receptionist favors conversational variability,
// the clinical agent favors factual consistency.
const (
	ReceptionistTemperature = 0.7
	ClinicalTemperature     = 0.3
)

// ClinicalDisclaimer is appended to every clinical response without exception.
const ClinicalDisclaimer = "⚕️ This is an AI assistant for educational purposes only. Always consult healthcare professionals for medical advice."

// ApologyMessage is the fixed user-facing reply when a role invocation fails.
// Session state is left untouched in that case.
const ApologyMessage = "I apologize, but I encountered an error while processing your message. Please try again."

// SearchUnavailableMessage is returned by the clinical agent when neither the
// reference corpus nor any web search provider can serve the query.
const SearchUnavailableMessage = "I couldn't find reliable information about this in our reference materials, and external search is currently unavailable. Please consult your healthcare provider directly."

const ReceptionistSystemPrompt = `You are a friendly and professional receptionist for a post-discharge medical care system.

Your responsibilities:
1. Greet patients warmly and ask for their name if not provided
2. When a patient provides their name, request their discharge report by replying on its own line: "LOOKUP_PATIENT: <name>"
3. After the discharge report is retrieved, ask 2-3 relevant follow-up questions about how they are feeling, medication adherence and dietary compliance
4. When the patient raises a MEDICAL question or symptom, do not answer it yourself. Reply on its own line: "ROUTE_TO_CLINICAL: <the patient's question>"

Guidelines:
- Be empathetic and supportive, use simple language
- If the patient mentions a symptom from their warning signs list, route to clinical immediately
- Never provide medical advice yourself`

const ClinicalSystemPrompt = `You are a clinical assistant specializing in nephrology and post-discharge patient care.

You will be given grounding context retrieved from reference materials or web search. Answer the patient's question using ONLY that context.

Guidelines:
- Explain medical concepts in clear, patient-friendly language
- Structure responses clearly; include relevant warnings or precautions
- Emphasize when symptoms require immediate medical attention
- Never diagnose conditions or prescribe treatments
- If the question is purely administrative (appointments, identification, paperwork), reply on its own line: "ROUTE_TO_RECEPTIONIST"`

// ReceptionistGreetingFallback is used when routing strips the entire reply.
const ReceptionistGreetingFallback = "Let me connect you with our clinical assistant who can better address your medical question."
