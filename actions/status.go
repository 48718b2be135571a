package actions

import (
	"context"

	"github.com/juju/errors"
	"github.com/storely/automation/types"
	"github.com/storely/automation/utils"
)

const KindUpdateStatus = "update_status"

/**
 * updateStatus sets a record's status field, e.g. flipping a
 * product to "out_of_stock". Config: record_type (default
 * "product"), record_id (template), status.
 */
type updateStatus struct {
	records types.RecordStore
}

func (u *updateStatus) Kind() string {
	return KindUpdateStatus
}

func (u *updateStatus) Execute(ctx context.Context, config, runCtx types.Data, testRun bool) (types.Data, error) {
	recordType, _ := config.GetString("record_type")
	recordIDTpl, _ := config.GetString("record_id")
	status, _ := config.GetString("status")

	if recordType == "" {
		recordType = "product"
	}
	recordID := utils.Interpolate(recordIDTpl, runCtx)
	if recordID == "" || utils.Unresolved(recordID) {
		return nil, errors.BadRequestf("record id not resolved from context: %q", recordIDTpl)
	}
	if status == "" {
		return nil, errors.BadRequestf("status is empty")
	}

	if testRun {
		return types.Data{
			"skipped":     true,
			"action":      KindUpdateStatus,
			"record_type": recordType,
			"record_id":   recordID,
			"status":      status,
		}, nil
	}

	if u.records == nil {
		return nil, errors.NotProvisionedf("record store")
	}
	if err := u.records.UpdateStatus(ctx, recordType, recordID, status); err != nil {
		return nil, errors.Annotatef(err, "update %s %s status to %q", recordType, recordID, status)
	}

	return types.Data{
		"updated":     true,
		"record_type": recordType,
		"record_id":   recordID,
		"status":      status,
	}, nil
}
