package csrf

// SecretResult is the outcome of an asynchronous secret draw.
type SecretResult struct {
	Secret string
	Err    error
}

// SecretCallback receives the outcome of SecretFunc.
type SecretCallback func(secret string, err error)

// Secret returns a new secret of Config.SecretLength random bytes,
// URL-safe base64 encoded.
func (t *Tokenizer) Secret() (string, error) {
	s, err := t.secrets.Generate(t.cfg.SecretLength)
	if err != nil {
		return "", ErrRandomSource.WithCause(err)
	}
	return s, nil
}

// SecretFunc draws a secret on a new goroutine and passes the result to cb.
func (t *Tokenizer) SecretFunc(cb SecretCallback) error {
	if cb == nil {
		return ErrInvalidArgument.WithDetails("argument callback must be a function")
	}
	go func() {
		cb(t.Secret())
	}()
	return nil
}

// SecretAsync draws a secret on a new goroutine. The returned channel
// receives exactly one result and is then closed.
func (t *Tokenizer) SecretAsync() <-chan SecretResult {
	ch := make(chan SecretResult, 1)
	go func() {
		s, err := t.Secret()
		ch <- SecretResult{Secret: s, Err: err}
		close(ch)
	}()
	return ch
}
