package browser

import "github.com/rs/zerolog"

// NavigationController clears the path fields when the source or bucket changes.
type NavigationController struct {
	form      *NavForm
	scheduler Scheduler
	logger    zerolog.Logger
}

// NewNavigationController returns a controller for form. form may be nil.
func NewNavigationController(form *NavForm, scheduler Scheduler, logger zerolog.Logger) *NavigationController {
	return &NavigationController{form: form, scheduler: scheduler, logger: logger}
}

// ResetNavigationState empties the prefix and token stack fields that exist.
func (c *NavigationController) ResetNavigationState() {
	if c.form == nil {
		return
	}
	if c.form.Prefix != nil {
		c.form.Prefix.Value = ""
	}
	if c.form.TokenStack != nil {
		c.form.TokenStack.Value = ""
	}
}

// BucketChanged resets the path and submits the form.
func (c *NavigationController) BucketChanged() {
	if c.form == nil {
		return
	}
	c.ResetNavigationState()
	c.logger.Debug().Str("bucket", c.form.Request().Bucket).Msg("bucket changed")
	c.form.Submit()
}

// SourceChanged resets the path and submits with the bucket selector disabled,
// so the request carries no bucket from the previous source. The selector is
// enabled again on a later scheduler turn whether or not the navigation went through.
func (c *NavigationController) SourceChanged() {
	if c.form == nil {
		return
	}
	c.ResetNavigationState()

	bucket := c.form.Bucket
	if bucket != nil {
		bucket.Disabled = true
	}
	c.logger.Debug().Str("source", c.form.Request().Source).Msg("source changed")
	c.form.Submit()

	reenable := func() {
		if bucket != nil {
			bucket.Disabled = false
		}
	}
	if c.scheduler == nil {
		reenable()
		return
	}
	c.scheduler.Defer(reenable)
}

func (c *NavigationController) wire() {
	if c.form == nil {
		return
	}
	if c.form.Bucket != nil {
		c.form.Bucket.OnChange(c.BucketChanged)
	}
	if c.form.Source != nil {
		c.form.Source.OnChange(c.SourceChanged)
	}
}
