package account

import (
	"context"
	"fmt"
	"sync"
)

// Account deletion has to walk the ownership tree leaf-to-root because
// the store does not cascade these relations. Instead of a hand-ordered
// call sequence, each owned entity kind is a node in a static dependency
// graph; adding a new owned entity means adding a node and its edges,
// not re-auditing the whole sequence. The executable order is derived by
// topological sort.

type Step struct {
	Name string

	// Steps that must have run before this one (their rows reference
	// rows this step deletes, or vice versa).
	Requires []string

	Run func(ctx context.Context, r Repository, t *Target) error
}

func steps() []Step {
	return []Step{
		{
			Name: "profile_images",
			Run: func(ctx context.Context, r Repository, t *Target) error {
				if t.Profile == nil {
					return nil
				}
				return r.DeleteProfileImages(ctx, t.Profile.ID)
			},
		},
		{
			Name: "applications",
			Run: func(ctx context.Context, r Repository, t *Target) error {
				if t.Profile != nil {
					if err := r.DeleteApplicationsByProfile(ctx, t.Profile.ID); err != nil {
						return err
					}
				}
				if t.Studio != nil {
					return r.DeleteApplicationsForStudioCalls(ctx, t.Studio.ID)
				}
				return nil
			},
		},
		{
			Name: "scene_assignments",
			Run: func(ctx context.Context, r Repository, t *Target) error {
				if t.Profile != nil {
					if err := r.DeleteSceneAssignmentsByProfile(ctx, t.Profile.ID); err != nil {
						return err
					}
				}
				if t.Studio != nil {
					return r.DeleteSceneAssignmentsForStudio(ctx, t.Studio.ID)
				}
				return nil
			},
		},
		{
			Name: "project_memberships",
			Run: func(ctx context.Context, r Repository, t *Target) error {
				if t.Profile != nil {
					if err := r.DeleteProjectMembershipsByProfile(ctx, t.Profile.ID); err != nil {
						return err
					}
				}
				if t.Studio != nil {
					return r.DeleteProjectMembershipsForStudio(ctx, t.Studio.ID)
				}
				return nil
			},
		},
		{
			Name: "project_invitations",
			Run: func(ctx context.Context, r Repository, t *Target) error {
				if t.Profile != nil {
					if err := r.DeleteInvitationsByProfile(ctx, t.Profile.ID); err != nil {
						return err
					}
				}
				if t.Studio != nil {
					return r.DeleteInvitationsForStudio(ctx, t.Studio.ID)
				}
				return nil
			},
		},
		{
			Name: "messages",
			Run: func(ctx context.Context, r Repository, t *Target) error {
				return r.DeleteMessagesByUser(ctx, t.User.ID)
			},
		},
		{
			Name: "studio_notes",
			Run: func(ctx context.Context, r Repository, t *Target) error {
				if t.Studio != nil {
					if err := r.DeleteStudioNotesByStudio(ctx, t.Studio.ID); err != nil {
						return err
					}
				}
				// Notes other studios keep about this profile would be
				// orphaned otherwise.
				if t.Profile != nil {
					return r.DeleteStudioNotesByProfile(ctx, t.Profile.ID)
				}
				return nil
			},
		},
		{
			Name:     "casting_calls",
			Requires: []string{"applications"},
			Run: func(ctx context.Context, r Repository, t *Target) error {
				if t.Studio == nil {
					return nil
				}
				return r.DeleteCastingCallsByStudio(ctx, t.Studio.ID)
			},
		},
		{
			Name:     "scenes",
			Requires: []string{"scene_assignments"},
			Run: func(ctx context.Context, r Repository, t *Target) error {
				if t.Studio == nil {
					return nil
				}
				return r.DeleteScenesForStudio(ctx, t.Studio.ID)
			},
		},
		{
			Name:     "projects",
			Requires: []string{"scenes", "project_memberships", "project_invitations", "casting_calls"},
			Run: func(ctx context.Context, r Repository, t *Target) error {
				if t.Studio == nil {
					return nil
				}
				return r.DeleteProjectsByStudio(ctx, t.Studio.ID)
			},
		},
		{
			Name: "external_actors",
			Run: func(ctx context.Context, r Repository, t *Target) error {
				if t.Studio == nil {
					return nil
				}
				return r.DeleteExternalActorsByStudio(ctx, t.Studio.ID)
			},
		},
		{
			Name:     "studio",
			Requires: []string{"casting_calls", "projects", "studio_notes", "external_actors"},
			Run: func(ctx context.Context, r Repository, t *Target) error {
				if t.Studio == nil {
					return nil
				}
				return r.DeleteStudio(ctx, t.Studio.ID)
			},
		},
		{
			Name: "subscriptions",
			Run: func(ctx context.Context, r Repository, t *Target) error {
				return r.DeleteSubscriptionsByUser(ctx, t.User.ID)
			},
		},
		{
			Name: "profile",
			Requires: []string{
				"profile_images", "applications", "scene_assignments",
				"project_memberships", "project_invitations", "studio_notes",
			},
			Run: func(ctx context.Context, r Repository, t *Target) error {
				if t.Profile == nil {
					return nil
				}
				return r.DeleteProfile(ctx, t.Profile.ID)
			},
		},
		{
			Name:     "tenant",
			Requires: []string{"studio", "profile"},
			Run: func(ctx context.Context, r Repository, t *Target) error {
				if t.Tenant == nil {
					return nil
				}
				return r.DeleteTenant(ctx, t.Tenant.ID)
			},
		},
		{
			Name:     "user",
			Requires: []string{"tenant", "messages", "subscriptions"},
			Run: func(ctx context.Context, r Repository, t *Target) error {
				return r.DeleteUser(ctx, t.User.ID)
			},
		},
	}
}

var (
	planOnce sync.Once
	plan     []Step
	planErr  error
)

// Plan returns the deletion steps in dependency order. The graph is
// static, so a cycle or an unknown edge is a programming error.
func Plan() []Step {
	planOnce.Do(func() {
		plan, planErr = sortSteps(steps())
	})
	if planErr != nil {
		panic(planErr)
	}
	return plan
}

// sortSteps is a stable Kahn topological sort: among ready steps, the
// one declared first runs first.
func sortSteps(all []Step) ([]Step, error) {
	byName := make(map[string]int, len(all))
	for i, s := range all {
		byName[s.Name] = i
	}

	pending := make([]int, len(all))
	for i, s := range all {
		for _, req := range s.Requires {
			if _, found := byName[req]; !found {
				return nil, fmt.Errorf("deletion graph: step %q requires unknown step %q", s.Name, req)
			}
		}
		pending[i] = len(s.Requires)
	}

	done := make(map[string]bool, len(all))
	ordered := make([]Step, 0, len(all))

	for len(ordered) < len(all) {
		progressed := false
		for i, s := range all {
			if done[s.Name] || pending[i] > 0 {
				continue
			}
			ordered = append(ordered, s)
			done[s.Name] = true
			progressed = true

			for j, other := range all {
				for _, req := range other.Requires {
					if req == s.Name {
						pending[j]--
					}
				}
			}
		}
		if !progressed {
			return nil, fmt.Errorf("deletion graph: dependency cycle")
		}
	}

	return ordered, nil
}
