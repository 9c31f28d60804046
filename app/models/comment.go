package models

// Validate checks if the comment meets all validation requirements
func (c *Comment) Validate() error {
	return validate.Struct(c)
}

// WithBody returns a copy of the comment with Body replaced.
func (c Comment) WithBody(body string) Comment {
	c.Body = body
	return c
}
