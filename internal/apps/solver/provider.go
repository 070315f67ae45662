package solver

// Provider is the external AI collaborator: question text in, worked
// answer text out. The HTTP implementation lives in client.go; tests use
// a scripted mock.
type Provider interface {
	Solve(question string) (Answer, error)
}

// Answer is what a provider returns for one question.
type Answer struct {
	Text  string
	Model string
}
