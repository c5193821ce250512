package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"microblog/internal/model"
	"microblog/internal/repository"
)

const (
	profileAvatarSize = 128

	// registerAttempts bounds the insert-retry loop for concurrent
	// registrations racing on the same nickname.
	registerAttempts = 5
)

// UserService handles account resolution, profiles and the unique-nickname
// rule.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	postRepo   repository.PostRepository
	db         *sqlx.DB
}

func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	postRepo repository.PostRepository,
	db *sqlx.DB,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		postRepo:   postRepo,
		db:         db,
	}
}

// LoginOrRegister resolves a verified federated identity to a local account,
// creating the account on first login. New accounts get a collision-resolved
// nickname and the bootstrap self-follow edge so their own posts appear in
// their feed; both commit in one transaction, so a failed commit leaves no
// half-created account.
func (s *UserService) LoginOrRegister(ctx context.Context, email, nickname string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	if nickname == "" {
		// No nickname claim from the identity provider, fall back to the
		// local part of the email.
		nickname = strings.SplitN(email, "@", 2)[0]
	}
	nickname = truncateNickname(nickname)

	// The pre-check in MakeUniqueNickname races with concurrent
	// registrations; the unique index catches the loser, which retries with
	// a fresh suffix.
	for attempt := 0; attempt < registerAttempts; attempt++ {
		unique, err := s.MakeUniqueNickname(ctx, nickname)
		if err != nil {
			return nil, err
		}

		user, err = s.register(ctx, email, unique)
		if err == nil {
			log.Printf("[UserService] Registered user=%d nickname=%s", user.ID, user.Nickname)
			return user, nil
		}
		if errors.Is(err, model.ErrEmailExists) {
			// Lost a first-login race for the same identity; the winner's
			// account is the one to use.
			return s.userRepo.GetByEmail(ctx, email)
		}
		if !errors.Is(err, model.ErrNicknameExists) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("register: nickname contention on %q", nickname)
}

func (s *UserService) register(ctx context.Context, email, nickname string) (*model.User, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	user := &model.User{Nickname: nickname, Email: email}
	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		return nil, err
	}

	// Bootstrap self-follow: the feed query has no special case for "own
	// posts", it relies on this edge.
	if _, err := s.followRepo.Create(ctx, tx, user.ID, user.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return user, nil
}

// truncateNickname trims an overlong nickname on a rune boundary so the
// result is still valid UTF-8.
func truncateNickname(nickname string) string {
	runes := []rune(nickname)
	if len(runes) > model.MaxNicknameLength {
		runes = runes[:model.MaxNicknameLength]
	}
	return string(runes)
}

// MakeUniqueNickname resolves nickname collisions deterministically: try the
// candidate, then candidate2, candidate3, ... until a free one is found. The
// suffix always attaches to the original candidate.
func (s *UserService) MakeUniqueNickname(ctx context.Context, candidate string) (string, error) {
	nickname := candidate
	suffix := 1
	for {
		exists, err := s.userRepo.ExistsByNickname(ctx, nickname)
		if err != nil {
			return "", err
		}
		if !exists {
			return nickname, nil
		}
		suffix++
		nickname = candidate + strconv.Itoa(suffix)
	}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile retrieves a user's profile by nickname with graph counts and the
// viewer's follow status. Counts come straight from the edge/post tables, so
// the self-follow edge is included in both follower and following counts.
func (s *UserService) GetProfile(ctx context.Context, nickname string, viewerID *int64) (*model.ProfileResponse, error) {
	user, err := s.userRepo.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}

	profile := &model.ProfileResponse{
		User:      user,
		AvatarURL: user.Avatar(profileAvatarSize),
	}

	if profile.FollowerCount, err = s.followRepo.CountFollowers(ctx, user.ID); err != nil {
		return nil, err
	}
	if profile.FollowingCount, err = s.followRepo.CountFollowing(ctx, user.ID); err != nil {
		return nil, err
	}
	if profile.PostCount, err = s.postRepo.CountByUser(ctx, user.ID); err != nil {
		return nil, err
	}

	if viewerID != nil && *viewerID != user.ID {
		if profile.IsFollowing, err = s.followRepo.Exists(ctx, *viewerID, user.ID); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

// UpdateProfile applies a validated profile edit. A nickname change that
// collides with another user is rejected with a suggested free nickname
// instead of silently renaming.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname != user.Nickname {
		exists, err := s.userRepo.ExistsByNickname(ctx, nickname)
		if err != nil {
			return nil, err
		}
		if exists {
			suggested, err := s.MakeUniqueNickname(ctx, nickname)
			if err != nil {
				return nil, err
			}
			return nil, &model.NicknameTakenError{Requested: nickname, Suggested: suggested}
		}
	}

	err = s.userRepo.UpdateProfile(ctx, userID, nickname, req.AboutMe)
	if errors.Is(err, model.ErrNicknameExists) {
		// Lost a race between the pre-check and the update
		suggested, serr := s.MakeUniqueNickname(ctx, nickname)
		if serr != nil {
			return nil, serr
		}
		return nil, &model.NicknameTakenError{Requested: nickname, Suggested: suggested}
	}
	if err != nil {
		return nil, err
	}

	user.Nickname = nickname
	user.AboutMe = req.AboutMe
	return user, nil
}

// TouchLastSeen records activity for the user. Failures are logged and
// swallowed; losing a last-seen update is not worth failing a request over.
func (s *UserService) TouchLastSeen(ctx context.Context, userID int64) error {
	if err := s.userRepo.TouchLastSeen(ctx, userID); err != nil {
		log.Printf("[UserService] TouchLastSeen failed: user=%d err=%v", userID, err)
		return err
	}
	return nil
}
