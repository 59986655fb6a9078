package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/sumitroy01/Donate-v2/internal/pkg/timeutil"
	"github.com/sumitroy01/Donate-v2/internal/repo"
)

// CodeCleanupJob clears verification and reset code columns whose expiry has
// passed. Expiry is enforced at check time regardless; this only keeps dead
// digests from lingering in the table.
type CodeCleanupJob struct {
	users *repo.UserRepo
}

func NewCodeCleanupJob(users *repo.UserRepo) *CodeCleanupJob {
	return &CodeCleanupJob{users: users}
}

func (j *CodeCleanupJob) Name() string {
	return "expired_code_cleanup"
}

func (j *CodeCleanupJob) Run(ctx context.Context) error {
	cleared, err := j.users.ClearExpiredCodes(ctx, timeutil.NowUnix())
	if err != nil {
		return err
	}
	if cleared > 0 {
		logutil.GetLogger(ctx).Info("cleared expired codes", zap.Int64("rows", cleared))
	}
	return nil
}
