package actions

import (
	"context"

	"github.com/juju/errors"
	"github.com/storely/automation/types"
	"github.com/storely/automation/utils"
)

const KindNotification = "notification"

/**
 * notification writes an internal notification record shown in the
 * admin UI. Config: title (template), message (template).
 */
type notification struct {
	records types.RecordStore
}

func (n *notification) Kind() string {
	return KindNotification
}

func (n *notification) Execute(ctx context.Context, config, runCtx types.Data, testRun bool) (types.Data, error) {
	titleTpl, _ := config.GetString("title")
	messageTpl, _ := config.GetString("message")

	title := utils.Interpolate(titleTpl, runCtx)
	message := utils.Interpolate(messageTpl, runCtx)
	if title == "" {
		return nil, errors.BadRequestf("notification title is empty")
	}

	if testRun {
		return types.Data{
			"skipped": true,
			"action":  KindNotification,
			"title":   title,
			"message": message,
		}, nil
	}

	if n.records == nil {
		return nil, errors.NotProvisionedf("record store")
	}
	if err := n.records.CreateNotification(ctx, title, message); err != nil {
		return nil, errors.Annotatef(err, "create notification %q", title)
	}

	return types.Data{
		"notified": true,
		"title":    title,
	}, nil
}
