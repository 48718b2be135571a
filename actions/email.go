package actions

import (
	"context"

	"github.com/juju/errors"
	"github.com/storely/automation/types"
	"github.com/storely/automation/utils"
)

const KindSendEmail = "send_email"

/**
 * sendEmail delivers a templated message through the site mailer.
 * Config: to (template, typically "{{customer.email}}"), subject,
 * body.
 */
type sendEmail struct {
	mailer types.Mailer
}

func (e *sendEmail) Kind() string {
	return KindSendEmail
}

func (e *sendEmail) Execute(ctx context.Context, config, runCtx types.Data, testRun bool) (types.Data, error) {
	toTpl, _ := config.GetString("to")
	subjectTpl, _ := config.GetString("subject")
	bodyTpl, _ := config.GetString("body")

	to := utils.Interpolate(toTpl, runCtx)
	subject := utils.Interpolate(subjectTpl, runCtx)
	body := utils.Interpolate(bodyTpl, runCtx)

	if to == "" || utils.Unresolved(to) {
		return nil, errors.BadRequestf("recipient not resolved from context: %q", toTpl)
	}

	if testRun {
		return types.Data{
			"skipped": true,
			"action":  KindSendEmail,
			"to":      to,
			"subject": subject,
		}, nil
	}

	if e.mailer == nil {
		return nil, errors.NotProvisionedf("mailer")
	}
	if err := e.mailer.Send(ctx, to, subject, body); err != nil {
		return nil, errors.Annotatef(err, "send email to %s", to)
	}

	return types.Data{
		"sent":    true,
		"to":      to,
		"subject": subject,
	}, nil
}
