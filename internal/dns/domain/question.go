package domain

import "fmt"

// Question represents one entry of a DNS question section.
type Question struct {
	Name  Name
	Type  RRType
	Class RRClass
}

// NewQuestion constructs a Question in the Internet class and validates it.
func NewQuestion(name string, rrtype RRType) (Question, error) {
	q := Question{
		Name:  ParseName(name),
		Type:  rrtype,
		Class: RRClassIN,
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Validate checks whether the Question fields are structurally and semantically valid.
func (q Question) Validate() error {
	if q.Name.IsRoot() {
		return fmt.Errorf("question name must not be the root")
	}
	if err := q.Name.Validate(); err != nil {
		return err
	}
	if !q.Type.IsValid() {
		return fmt.Errorf("unsupported RRType: %d", q.Type)
	}
	if !q.Class.IsValid() {
		return fmt.Errorf("unsupported RRClass: %d", q.Class)
	}
	return nil
}

// String renders the question in a dig-like "name type class" form.
func (q Question) String() string {
	return fmt.Sprintf("%s %s %s", q.Name, q.Type, q.Class)
}
