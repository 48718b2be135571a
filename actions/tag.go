package actions

import (
	"context"

	"github.com/juju/errors"
	"github.com/storely/automation/types"
	"github.com/storely/automation/utils"
)

const KindAddTag = "add_tag"

/**
 * addTag appends a tag to a customer/order/product record.
 * Config: record_type, record_id (template), tag.
 */
type addTag struct {
	records types.RecordStore
}

func (a *addTag) Kind() string {
	return KindAddTag
}

func (a *addTag) Execute(ctx context.Context, config, runCtx types.Data, testRun bool) (types.Data, error) {
	recordType, _ := config.GetString("record_type")
	recordIDTpl, _ := config.GetString("record_id")
	tag, _ := config.GetString("tag")

	recordID := utils.Interpolate(recordIDTpl, runCtx)
	if recordID == "" || utils.Unresolved(recordID) {
		return nil, errors.BadRequestf("record id not resolved from context: %q", recordIDTpl)
	}
	if tag == "" {
		return nil, errors.BadRequestf("tag is empty")
	}

	if testRun {
		return types.Data{
			"skipped":     true,
			"action":      KindAddTag,
			"record_type": recordType,
			"record_id":   recordID,
			"tag":         tag,
		}, nil
	}

	if a.records == nil {
		return nil, errors.NotProvisionedf("record store")
	}
	if err := a.records.AddTag(ctx, recordType, recordID, tag); err != nil {
		return nil, errors.Annotatef(err, "add tag %q to %s %s", tag, recordType, recordID)
	}

	return types.Data{
		"tagged":      true,
		"record_type": recordType,
		"record_id":   recordID,
		"tag":         tag,
	}, nil
}
