package voiceauth

// Configurator holds a PolicyConfig and the shared Models bundle, and
// mints Enroller/Verifier instances. It is otherwise stateless: it never
// pre-loads models itself (that is Models' job, done once at application
// start) and it never mutates the policy it was constructed with.
type Configurator struct {
	models *Models
	policy PolicyConfig
}

// NewConfigurator builds a Configurator over an already-constructed
// Models bundle and a PolicyConfig. The policy is copied internally, so
// later mutation of the value the caller passed in has no effect here.
func NewConfigurator(models *Models, policy PolicyConfig) *Configurator {
	return &Configurator{models: models, policy: policy}
}

// CreateEnroller returns a new Enroller capturing a copy of the
// Configurator's current policy.
func (c *Configurator) CreateEnroller() *Enroller {
	return &Enroller{models: c.models, policy: c.policy}
}

// CreateVerifier returns a new Verifier bound to artifact, capturing a
// copy of the Configurator's current policy.
func (c *Configurator) CreateVerifier(artifact EnrollmentArtifact) *Verifier {
	return &Verifier{models: c.models, policy: c.policy, artifact: artifact}
}
