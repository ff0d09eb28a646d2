// Package errors provides the coded error type used across pixel-xp.
//
// Every failure the battle engine reports is one of a small set of codes:
//   - InvalidArgument: a quest mutation failed validation (blank title, non-positive XP)
//   - NotFound: an operation referenced an unknown quest id, or a store key is absent
//   - FailedPrecondition: the engine is in the wrong lifecycle state (for example already started)
//   - DataLoss: persisted state could not be decoded
//   - Unavailable / DeadlineExceeded: a remote rival calculator could not be reached in time
//   - Internal: anything else
//
// Creating and inspecting errors:
//
//	err := errors.NotFoundf("quest %s not found", id).WithMeta("quest_id", id)
//	if errors.IsNotFound(err) {
//	    // ...
//	}
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := store.Set(ctx, in); err != nil {
//	    return errors.Wrap(err, "failed to persist quests")
//	}
//
// Errors cross the rival transport as gRPC statuses via ToGRPCError and FromGRPCError.
package errors
