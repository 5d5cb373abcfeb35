package authz

import (
	"github.com/aokumo/dept-task-api/internal/models"
)

// Action is what the actor is attempting against a resource.
type Action int

const (
	ActionRead Action = iota
	ActionWrite
	// ActionDelete is a hard delete, as opposed to archival.
	ActionDelete
	ActionRemoveCollaborator
)

// Actor carries everything the predicate needs about the caller. The
// reachable department set is resolved by the caller (own department plus
// transitive subordinates for managers) so the predicate stays free of I/O.
type Actor struct {
	UserID               uint64
	DepartmentID         uint64
	Role                 models.Role
	ReachableDepartments map[uint64]struct{}
}

// Resource describes the target of an action. AssigneeIDs and
// CollaboratorIDs need only be populated when they apply to the entity.
type Resource struct {
	DepartmentID    uint64
	OwnerID         uint64
	AssigneeIDs     []uint64
	CollaboratorIDs []uint64
}

type scope int

const (
	scopeNone scope = iota
	// scopeOwn covers resources the actor owns, is assigned to, or
	// collaborates on.
	scopeOwn
	// scopeDepartment covers the actor's reachable department set, falling
	// back to scopeOwn elsewhere for reads.
	scopeDepartment
	scopeAll
)

type capability struct {
	read               scope
	write              scope
	hardDelete         bool
	removeCollaborator bool
}

var capabilities = map[models.Role]capability{
	models.RoleStaff: {
		read:  scopeOwn,
		write: scopeOwn,
	},
	models.RoleManager: {
		read:               scopeDepartment,
		write:              scopeDepartment,
		removeCollaborator: true,
	},
	models.RoleHRAdmin: {
		read:               scopeAll,
		write:              scopeAll,
		hardDelete:         true,
		removeCollaborator: true,
	},
}

// CanAct decides whether the actor may perform the action on the resource.
// Pure: no I/O, deterministic for a given actor/resource pair.
func CanAct(actor Actor, resource Resource, action Action) bool {
	c, ok := capabilities[actor.Role]
	if !ok {
		return false
	}

	switch action {
	case ActionRead:
		return inScope(c.read, actor, resource, true)
	case ActionWrite:
		return inScope(c.write, actor, resource, false)
	case ActionDelete:
		return c.hardDelete
	case ActionRemoveCollaborator:
		return c.removeCollaborator && inScope(c.write, actor, resource, false)
	default:
		return false
	}
}

// CanActInDepartment decides whether the actor may create resources in the
// department. Creation has no existing ownership to fall back to, so the
// check is purely department scope.
func CanActInDepartment(actor Actor, departmentID uint64, action Action) bool {
	c, ok := capabilities[actor.Role]
	if !ok {
		return false
	}

	var s scope
	switch action {
	case ActionRead:
		s = c.read
	case ActionWrite:
		s = c.write
	default:
		return false
	}

	switch s {
	case scopeAll:
		return true
	case scopeDepartment:
		_, reachable := actor.ReachableDepartments[departmentID]
		return reachable
	case scopeOwn:
		return departmentID == actor.DepartmentID
	default:
		return false
	}
}

// inScope checks the resource against a scope. For reads, department-scoped
// actors keep personal access to resources they touch outside their
// departments; writes do not fall back that way.
func inScope(s scope, actor Actor, resource Resource, readFallback bool) bool {
	switch s {
	case scopeAll:
		return true
	case scopeDepartment:
		if _, ok := actor.ReachableDepartments[resource.DepartmentID]; ok {
			return true
		}
		if readFallback {
			return touches(actor.UserID, resource)
		}
		return false
	case scopeOwn:
		return touches(actor.UserID, resource)
	default:
		return false
	}
}

func touches(userID uint64, resource Resource) bool {
	if resource.OwnerID == userID {
		return true
	}
	for _, id := range resource.AssigneeIDs {
		if id == userID {
			return true
		}
	}
	for _, id := range resource.CollaboratorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ActorFor builds the predicate input from a loaded profile and its
// precomputed reachable department set.
func ActorFor(profile *models.UserProfile, reachable map[uint64]struct{}) Actor {
	return Actor{
		UserID:               profile.ID,
		DepartmentID:         profile.DepartmentID,
		Role:                 profile.Role,
		ReachableDepartments: reachable,
	}
}

// TaskResource maps a task (with preloaded assignments) to a Resource.
func TaskResource(task *models.Task) Resource {
	return Resource{
		DepartmentID: task.DepartmentID,
		OwnerID:      task.OwnerID,
		AssigneeIDs:  task.AssigneeIDs(),
	}
}

// ProjectResource maps a project to a Resource. Collaborator IDs are passed
// separately since they live in a derived table.
func ProjectResource(project *models.Project, collaboratorIDs []uint64) Resource {
	return Resource{
		DepartmentID:    project.DepartmentID,
		OwnerID:         project.CreatorID,
		CollaboratorIDs: collaboratorIDs,
	}
}
