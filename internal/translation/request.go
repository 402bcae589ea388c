package translation

// Request describes one translation. It is a value: every With* method
// returns an updated copy and leaves the receiver untouched, so a base
// request can be shared and specialised freely.
//
// No field is validated here. An empty query or target language is a valid
// Request and only fails once the upstream rejects it.
type Request struct {
	variant    Variant
	client     string
	sourceLang string
	targetLang string
	dstTarget  string
	query      string
}

// NewRequest returns a Request for the given variant with the variant's
// default client tag and the fixed dt value.
func NewRequest(v Variant) Request {
	return Request{
		variant:   v,
		client:    v.DefaultClient(),
		dstTarget: DstTarget,
	}
}

// WithClient sets the client tag ("gtx", "p", ...).
func (r Request) WithClient(client string) Request {
	r.client = client
	return r
}

// WithSourceLang sets the source language. "auto" lets the upstream detect it.
func (r Request) WithSourceLang(lang string) Request {
	r.sourceLang = lang
	return r
}

// WithTargetLang sets the target language.
func (r Request) WithTargetLang(lang string) Request {
	r.targetLang = lang
	return r
}

// WithDstTarget overrides the dt parameter.
func (r Request) WithDstTarget(dt string) Request {
	r.dstTarget = dt
	return r
}

// WithQuery sets the text to translate.
func (r Request) WithQuery(query string) Request {
	r.query = query
	return r
}

func (r Request) Variant() Variant { return r.variant }
func (r Request) Client() string { return r.client }
func (r Request) SourceLang() string { return r.sourceLang }
func (r Request) TargetLang() string { return r.targetLang }
func (r Request) DstTarget() string { return r.dstTarget }
func (r Request) Query() string { return r.query }
