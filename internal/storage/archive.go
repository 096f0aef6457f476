// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package storage

import (
	"context"
	"time"
)

// ReportArchive stores the JSON report of completed scans
type ReportArchive interface {
	PutReport(ctx context.Context, key string, body []byte) error
	ReportURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)
}

// ReportKey is the object key of a scan report
func ReportKey(orgID, repoID, scanID string) string {
	return "scans/" + orgID + "/" + repoID + "/" + scanID + ".json"
}
