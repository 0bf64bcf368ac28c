package validator

// Validator is the facade services and handlers receive. It wraps the
// business validator so call sites never touch the underlying library
// directly.
type Validator struct {
	business *BusinessValidator
}

func New() *Validator {
	return &Validator{
		business: NewBusinessValidator(),
	}
}

func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}

// Struct validates any tagged struct.
func (v *Validator) Struct(s interface{}) ValidationErrors {
	return v.business.Validate(s)
}
