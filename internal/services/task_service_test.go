package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aokumo/dept-task-api/internal/models"
	"github.com/aokumo/dept-task-api/internal/pkg/logger"
	"github.com/aokumo/dept-task-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingSink captures emitted notifications for assertions.
type recordingSink struct {
	notifications []*models.Notification
}

func (s *recordingSink) Notify(n *models.Notification) error {
	s.notifications = append(s.notifications, n)
	return nil
}

// failingSink always refuses, to exercise side-effect isolation.
type failingSink struct{}

func (failingSink) Notify(*models.Notification) error {
	return errors.New("sink unavailable")
}

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	deptRepo    repository.DepartmentRepository
	sink        *recordingSink
	service     *TaskService
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.Department{},
		&models.UserProfile{},
		&models.Project{},
		&models.ProjectCollaborator{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.TaskTag{},
		&models.TaskComment{},
		&models.TaskActionLog{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	suite.taskRepo = repository.NewTaskRepository(suite.db)
	suite.projectRepo = repository.NewProjectRepository(suite.db)
	suite.userRepo = repository.NewUserRepository(suite.db)
	suite.deptRepo = repository.NewDepartmentRepository(suite.db)

	suite.sink = &recordingSink{}
	collab := NewCollaboratorService(suite.projectRepo, suite.sink, logger.NewNop())
	suite.service = NewTaskService(suite.taskRepo, suite.projectRepo, suite.userRepo, suite.deptRepo, collab, logger.NewNop())
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *TaskServiceTestSuite) createDepartment(name string, parentID *uint64) *models.Department {
	dept := &models.Department{
		Name:     name,
		ParentID: parentID,
		JoinCode: name + "-CODE",
		IsActive: true,
	}
	suite.Require().NoError(suite.db.Create(dept).Error)
	return dept
}

func (suite *TaskServiceTestSuite) createUser(email string, role models.Role, deptID uint64) *models.UserProfile {
	user := &models.UserProfile{
		Email:        email,
		PasswordHash: "hashedpassword",
		DisplayName:  email,
		Role:         role,
		DepartmentID: deptID,
		IsActive:     true,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskServiceTestSuite) createProject(name string, deptID, creatorID uint64) *models.Project {
	project := &models.Project{
		Name:         name,
		Priority:     5,
		Status:       models.ProjectStatusActive,
		DepartmentID: deptID,
		CreatorID:    creatorID,
	}
	suite.Require().NoError(suite.db.Create(project).Error)
	return project
}

func (suite *TaskServiceTestSuite) createTask(title string, manager *models.UserProfile, assigneeIDs []uint64, projectID *uint64) *models.Task {
	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:        title,
		Description:  "Test description",
		OwnerID:      manager.ID,
		DepartmentID: manager.DepartmentID,
		ProjectID:    projectID,
		AssigneeIDs:  assigneeIDs,
	}, manager)
	suite.Require().NoError(err)
	return task
}

func intPtr(v int) *int { return &v }

func (suite *TaskServiceTestSuite) collaboratorRow(projectID, userID uint64) (*models.ProjectCollaborator, bool) {
	var row models.ProjectCollaborator
	err := suite.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false
	}
	suite.Require().NoError(err)
	return &row, true
}

// Tests

func (suite *TaskServiceTestSuite) TestCreateTaskDefaultsPriority() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)

	task := suite.createTask("Write report", manager, []uint64{manager.ID}, nil)

	assert.Equal(suite.T(), 5, task.Priority)
	assert.Equal(suite.T(), models.TaskStatusTodo, task.Status)
}

func (suite *TaskServiceTestSuite) TestCreateTaskPriorityOutOfRange() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)

	_, err := suite.service.CreateTask(CreateTaskInput{
		Title:        "Write report",
		Description:  "Test description",
		Priority:     intPtr(11),
		OwnerID:      manager.ID,
		DepartmentID: dept.ID,
		AssigneeIDs:  []uint64{manager.ID},
	}, manager)

	assert.ErrorIs(suite.T(), err, ErrPriorityOutOfRange)
}

func (suite *TaskServiceTestSuite) TestCreateTaskRequiresAssignee() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)

	_, err := suite.service.CreateTask(CreateTaskInput{
		Title:        "Write report",
		Description:  "Test description",
		OwnerID:      manager.ID,
		DepartmentID: dept.ID,
	}, manager)

	assert.ErrorIs(suite.T(), err, ErrNoAssignees)
}

func (suite *TaskServiceTestSuite) TestCreateTaskAssigneeLimit() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)

	ids := make([]uint64, 0, 6)
	for i := 0; i < 6; i++ {
		user := suite.createUser(fmt.Sprintf("staff%d@example.com", i), models.RoleStaff, dept.ID)
		ids = append(ids, user.ID)
	}

	_, err := suite.service.CreateTask(CreateTaskInput{
		Title:        "Big task",
		Description:  "Test description",
		OwnerID:      manager.ID,
		DepartmentID: dept.ID,
		AssigneeIDs:  ids,
	}, manager)
	assert.ErrorIs(suite.T(), err, ErrTooManyAssignees)

	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:        "Big task",
		Description:  "Test description",
		OwnerID:      manager.ID,
		DepartmentID: dept.ID,
		AssigneeIDs:  ids[:5],
	}, manager)
	suite.Require().NoError(err)
	assert.Len(suite.T(), task.Assignments, 5)
}

func (suite *TaskServiceTestSuite) TestCreateTaskDeduplicatesAssignees() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	staff := suite.createUser("staff@example.com", models.RoleStaff, dept.ID)

	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:        "Write report",
		Description:  "Test description",
		OwnerID:      manager.ID,
		DepartmentID: dept.ID,
		AssigneeIDs:  []uint64{staff.ID, staff.ID, staff.ID},
	}, manager)
	suite.Require().NoError(err)

	assert.Len(suite.T(), task.Assignments, 1)
	assert.Equal(suite.T(), staff.ID, task.Assignments[0].UserID)
}

func (suite *TaskServiceTestSuite) TestSubtaskDepthLimit() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)

	parent := suite.createTask("Parent", manager, []uint64{manager.ID}, nil)

	subtask, err := suite.service.CreateTask(CreateTaskInput{
		Title:        "Subtask",
		Description:  "Test description",
		OwnerID:      manager.ID,
		DepartmentID: dept.ID,
		ParentTaskID: &parent.ID,
		AssigneeIDs:  []uint64{manager.ID},
	}, manager)
	suite.Require().NoError(err)

	_, err = suite.service.CreateTask(CreateTaskInput{
		Title:        "Too deep",
		Description:  "Test description",
		OwnerID:      manager.ID,
		DepartmentID: dept.ID,
		ParentTaskID: &subtask.ID,
		AssigneeIDs:  []uint64{manager.ID},
	}, manager)

	assert.ErrorIs(suite.T(), err, ErrSubtaskDepthExceeded)
	assert.Contains(suite.T(), err.Error(), "TGO026")
}

func (suite *TaskServiceTestSuite) TestCreateTaskInArchivedProject() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	project := suite.createProject("Legacy", dept.ID, manager.ID)
	suite.Require().NoError(suite.db.Model(project).Update("is_archived", true).Error)

	input := CreateTaskInput{
		Title:        "Backfill",
		Description:  "Test description",
		OwnerID:      manager.ID,
		DepartmentID: dept.ID,
		ProjectID:    &project.ID,
		AssigneeIDs:  []uint64{manager.ID},
	}

	_, err := suite.service.CreateTask(input, manager)
	assert.ErrorIs(suite.T(), err, ErrProjectArchived)

	input.AllowArchivedProject = true
	task, err := suite.service.CreateTask(input, manager)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), project.ID, *task.ProjectID)
}

func (suite *TaskServiceTestSuite) TestCollaboratorDerivedOnCreate() {
	engineering := suite.createDepartment("Engineering", nil)
	design := suite.createDepartment("Design", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, engineering.ID)
	designer := suite.createUser("designer@example.com", models.RoleStaff, design.ID)
	project := suite.createProject("Website", engineering.ID, manager.ID)

	suite.createTask("Mockups", manager, []uint64{designer.ID}, &project.ID)

	// The collaborator row carries the assignee's own department, not the
	// project's.
	row, ok := suite.collaboratorRow(project.ID, designer.ID)
	suite.Require().True(ok)
	assert.Equal(suite.T(), design.ID, row.DepartmentID)

	suite.Require().Len(suite.sink.notifications, 1)
	notification := suite.sink.notifications[0]
	assert.Equal(suite.T(), designer.ID, notification.UserID)
	assert.Equal(suite.T(), models.NotificationProjectCollaborationAdded, notification.Type)
	assert.Contains(suite.T(), notification.Message, "Website")
}

func (suite *TaskServiceTestSuite) TestCollaboratorFanOutOnCreate() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	project := suite.createProject("Website", dept.ID, manager.ID)

	assigneeIDs := make([]uint64, 0, 5)
	for i := 0; i < 5; i++ {
		staff := suite.createUser(fmt.Sprintf("staff%d@example.com", i), models.RoleStaff, dept.ID)
		assigneeIDs = append(assigneeIDs, staff.ID)
	}

	task := suite.createTask("Launch prep", manager, assigneeIDs, &project.ID)

	var assignments int64
	suite.db.Model(&models.TaskAssignment{}).Where("task_id = ?", task.ID).Count(&assignments)
	assert.Equal(suite.T(), int64(5), assignments)

	var collaborators int64
	suite.db.Model(&models.ProjectCollaborator{}).Where("project_id = ?", project.ID).Count(&collaborators)
	assert.Equal(suite.T(), int64(5), collaborators)

	suite.Require().Len(suite.sink.notifications, 5)
	notified := make(map[uint64]bool)
	for _, n := range suite.sink.notifications {
		assert.Equal(suite.T(), models.NotificationProjectCollaborationAdded, n.Type)
		notified[n.UserID] = true
	}
	for _, id := range assigneeIDs {
		assert.True(suite.T(), notified[id])
	}
}

func (suite *TaskServiceTestSuite) TestNoDuplicateCollaboratorNotification() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	staff := suite.createUser("staff@example.com", models.RoleStaff, dept.ID)
	project := suite.createProject("Website", dept.ID, manager.ID)

	suite.createTask("First", manager, []uint64{staff.ID}, &project.ID)
	suite.createTask("Second", manager, []uint64{staff.ID}, &project.ID)

	var count int64
	suite.db.Model(&models.ProjectCollaborator{}).
		Where("project_id = ? AND user_id = ?", project.ID, staff.ID).
		Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	assert.Len(suite.T(), suite.sink.notifications, 1)
}

func (suite *TaskServiceTestSuite) TestAddAssigneeLimit() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)

	ids := make([]uint64, 0, 5)
	for i := 0; i < 5; i++ {
		user := suite.createUser(fmt.Sprintf("staff%d@example.com", i), models.RoleStaff, dept.ID)
		ids = append(ids, user.ID)
	}
	task := suite.createTask("Full task", manager, ids, nil)

	extra := suite.createUser("extra@example.com", models.RoleStaff, dept.ID)
	_, err := suite.service.AddAssignee(task.ID, extra.ID, manager)
	assert.ErrorIs(suite.T(), err, ErrTooManyAssignees)

	// Re-adding an existing assignee is a no-op, not a sixth slot.
	updated, err := suite.service.AddAssignee(task.ID, ids[0], manager)
	suite.Require().NoError(err)
	assert.Len(suite.T(), updated.Assignments, 5)
}

func (suite *TaskServiceTestSuite) TestRemoveLastAssigneeRefused() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	staff := suite.createUser("staff@example.com", models.RoleStaff, dept.ID)

	task := suite.createTask("Solo task", manager, []uint64{staff.ID}, nil)

	_, err := suite.service.RemoveAssignee(task.ID, staff.ID, manager)
	assert.ErrorIs(suite.T(), err, ErrLastAssignee)

	count, err := suite.taskRepo.CountAssignments(task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TaskServiceTestSuite) TestRemoveAssigneeDropsCollaborator() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	alice := suite.createUser("alice@example.com", models.RoleStaff, dept.ID)
	bob := suite.createUser("bob@example.com", models.RoleStaff, dept.ID)
	project := suite.createProject("Website", dept.ID, manager.ID)

	task := suite.createTask("Shared task", manager, []uint64{alice.ID, bob.ID}, &project.ID)

	_, err := suite.service.RemoveAssignee(task.ID, bob.ID, manager)
	suite.Require().NoError(err)

	_, ok := suite.collaboratorRow(project.ID, bob.ID)
	assert.False(suite.T(), ok)

	_, ok = suite.collaboratorRow(project.ID, alice.ID)
	assert.True(suite.T(), ok)
}

func (suite *TaskServiceTestSuite) TestCollaboratorSurvivesRemainingAssignment() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	alice := suite.createUser("alice@example.com", models.RoleStaff, dept.ID)
	bob := suite.createUser("bob@example.com", models.RoleStaff, dept.ID)
	project := suite.createProject("Website", dept.ID, manager.ID)

	suite.createTask("First", manager, []uint64{alice.ID}, &project.ID)
	second := suite.createTask("Second", manager, []uint64{alice.ID, bob.ID}, &project.ID)

	_, err := suite.service.RemoveAssignee(second.ID, alice.ID, manager)
	suite.Require().NoError(err)

	// Alice still holds an assignment on the first task, so membership stands.
	_, ok := suite.collaboratorRow(project.ID, alice.ID)
	assert.True(suite.T(), ok)
}

func (suite *TaskServiceTestSuite) TestStaffCannotRemoveOthersAssignment() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	alice := suite.createUser("alice@example.com", models.RoleStaff, dept.ID)
	bob := suite.createUser("bob@example.com", models.RoleStaff, dept.ID)

	task := suite.createTask("Shared task", manager, []uint64{alice.ID, bob.ID}, nil)

	_, err := suite.service.RemoveAssignee(task.ID, bob.ID, alice)
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)

	_, err = suite.service.RemoveAssignee(task.ID, alice.ID, alice)
	assert.NoError(suite.T(), err)
}

func (suite *TaskServiceTestSuite) TestUpdateStatusTransitions() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	task := suite.createTask("Write report", manager, []uint64{manager.ID}, nil)

	_, err := suite.service.UpdateStatus(task.ID, models.TaskStatusCompleted, manager)
	assert.ErrorIs(suite.T(), err, ErrInvalidStatusTransition)

	task2, err := suite.service.UpdateStatus(task.ID, models.TaskStatusInProgress, manager)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, task2.Status)

	// Same-status update is accepted and changes nothing.
	task3, err := suite.service.UpdateStatus(task.ID, models.TaskStatusInProgress, manager)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, task3.Status)

	task4, err := suite.service.UpdateStatus(task.ID, models.TaskStatusCompleted, manager)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, task4.Status)

	// Completed tasks can be reopened.
	task5, err := suite.service.UpdateStatus(task.ID, models.TaskStatusTodo, manager)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusTodo, task5.Status)
}

func (suite *TaskServiceTestSuite) TestRecurringTaskCompletionReschedules() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)

	due := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:             "Weekly sync notes",
		Description:       "Test description",
		DueDate:           &due,
		OwnerID:           manager.ID,
		DepartmentID:      dept.ID,
		IsRecurring:       true,
		RecurringInterval: intPtr(7),
		AssigneeIDs:       []uint64{manager.ID},
	}, manager)
	suite.Require().NoError(err)

	_, err = suite.service.UpdateStatus(task.ID, models.TaskStatusInProgress, manager)
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateStatus(task.ID, models.TaskStatusCompleted, manager)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), models.TaskStatusTodo, updated.Status)
	suite.Require().NotNil(updated.DueDate)
	assert.WithinDuration(suite.T(), due.AddDate(0, 0, 7), *updated.DueDate, time.Second)

	// The audit trail records the status the row landed on, not COMPLETED.
	var log models.TaskActionLog
	err = suite.db.Where("task_id = ? AND action = ?", task.ID, models.TaskActionStatusChanged).
		Order("id DESC").First(&log).Error
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "IN_PROGRESS -> TO_DO (recurring, rescheduled)", log.Detail)
}

func (suite *TaskServiceTestSuite) TestStaffCannotReadUntouchedTask() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	alice := suite.createUser("alice@example.com", models.RoleStaff, dept.ID)
	bob := suite.createUser("bob@example.com", models.RoleStaff, dept.ID)

	task := suite.createTask("Manager task", manager, []uint64{bob.ID}, nil)

	_, err := suite.service.GetTask(task.ID, alice)
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)

	_, err = suite.service.GetTask(task.ID, bob)
	assert.NoError(suite.T(), err)
}

func (suite *TaskServiceTestSuite) TestManagerScopeFollowsHierarchy() {
	parent := suite.createDepartment("Engineering", nil)
	child := suite.createDepartment("Platform", &parent.ID)
	sibling := suite.createDepartment("Sales", nil)

	manager := suite.createUser("manager@example.com", models.RoleManager, parent.ID)
	platformLead := suite.createUser("lead@example.com", models.RoleManager, child.ID)
	seller := suite.createUser("seller@example.com", models.RoleManager, sibling.ID)

	childTask := suite.createTask("Platform task", platformLead, []uint64{platformLead.ID}, nil)
	siblingTask := suite.createTask("Sales task", seller, []uint64{seller.ID}, nil)

	_, err := suite.service.GetTask(childTask.ID, manager)
	assert.NoError(suite.T(), err)

	_, err = suite.service.GetTask(siblingTask.ID, manager)
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)
}

func (suite *TaskServiceTestSuite) TestDeleteTaskRequiresHRAdmin() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	hrAdmin := suite.createUser("hr@example.com", models.RoleHRAdmin, dept.ID)

	task := suite.createTask("Sensitive task", manager, []uint64{manager.ID}, nil)

	err := suite.service.DeleteTask(task.ID, manager)
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)

	err = suite.service.DeleteTask(task.ID, hrAdmin)
	suite.Require().NoError(err)

	_, err = suite.service.GetTask(task.ID, hrAdmin)
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)

	var assignments int64
	suite.db.Unscoped().Model(&models.TaskAssignment{}).Where("task_id = ?", task.ID).Count(&assignments)
	assert.Equal(suite.T(), int64(0), assignments)
}

func (suite *TaskServiceTestSuite) TestSinkFailureDoesNotFailAssignment() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	staff := suite.createUser("staff@example.com", models.RoleStaff, dept.ID)
	project := suite.createProject("Website", dept.ID, manager.ID)

	collab := NewCollaboratorService(suite.projectRepo, failingSink{}, logger.NewNop())
	service := NewTaskService(suite.taskRepo, suite.projectRepo, suite.userRepo, suite.deptRepo, collab, logger.NewNop())

	task, err := service.CreateTask(CreateTaskInput{
		Title:        "Mockups",
		Description:  "Test description",
		OwnerID:      manager.ID,
		DepartmentID: dept.ID,
		ProjectID:    &project.ID,
		AssigneeIDs:  []uint64{staff.ID},
	}, manager)
	suite.Require().NoError(err)

	// Assignment and derived membership persist; only the notification is lost.
	assert.Len(suite.T(), task.Assignments, 1)
	_, ok := suite.collaboratorRow(project.ID, staff.ID)
	assert.True(suite.T(), ok)
}

func (suite *TaskServiceTestSuite) TestLinkProjectDerivesCollaborators() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	staff := suite.createUser("staff@example.com", models.RoleStaff, dept.ID)
	project := suite.createProject("Website", dept.ID, manager.ID)

	task := suite.createTask("Floating task", manager, []uint64{staff.ID}, nil)
	_, ok := suite.collaboratorRow(project.ID, staff.ID)
	suite.Require().False(ok)

	_, err := suite.service.AssignToProject(task.ID, &project.ID, manager)
	suite.Require().NoError(err)

	_, ok = suite.collaboratorRow(project.ID, staff.ID)
	assert.True(suite.T(), ok)
}

func (suite *TaskServiceTestSuite) TestGetTaskHierarchy() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)

	parent := suite.createTask("Parent", manager, []uint64{manager.ID}, nil)
	sub1, err := suite.service.CreateTask(CreateTaskInput{
		Title:        "Sub one",
		Description:  "Test description",
		OwnerID:      manager.ID,
		DepartmentID: dept.ID,
		ParentTaskID: &parent.ID,
		AssigneeIDs:  []uint64{manager.ID},
	}, manager)
	suite.Require().NoError(err)

	hierarchy, err := suite.service.GetTaskHierarchy(sub1.ID, manager)
	suite.Require().NoError(err)
	suite.Require().NotNil(hierarchy.Parent)
	assert.Equal(suite.T(), parent.ID, hierarchy.Parent.ID)
	assert.Empty(suite.T(), hierarchy.Subtasks)

	hierarchy, err = suite.service.GetTaskHierarchy(parent.ID, manager)
	suite.Require().NoError(err)
	assert.Nil(suite.T(), hierarchy.Parent)
	assert.Len(suite.T(), hierarchy.Subtasks, 1)
}

func (suite *TaskServiceTestSuite) TestListTasksStaffVisibility() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	alice := suite.createUser("alice@example.com", models.RoleStaff, dept.ID)
	bob := suite.createUser("bob@example.com", models.RoleStaff, dept.ID)

	suite.createTask("Alice's task", manager, []uint64{alice.ID}, nil)
	suite.createTask("Bob's task", manager, []uint64{bob.ID}, nil)

	tasks, total, err := suite.service.ListTasks(ListTasksInput{}, alice)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "Alice's task", tasks[0].Title)

	tasks, total, err = suite.service.ListTasks(ListTasksInput{}, manager)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(2), total)
	assert.Len(suite.T(), tasks, 2)
}

func (suite *TaskServiceTestSuite) TestComments() {
	dept := suite.createDepartment("Engineering", nil)
	manager := suite.createUser("manager@example.com", models.RoleManager, dept.ID)
	staff := suite.createUser("staff@example.com", models.RoleStaff, dept.ID)

	task := suite.createTask("Write report", manager, []uint64{staff.ID}, nil)

	_, err := suite.service.AddComment(task.ID, "Looks good so far", staff)
	suite.Require().NoError(err)

	_, err = suite.service.AddComment(task.ID, "   ", staff)
	assert.ErrorIs(suite.T(), err, ErrDescriptionRequired)

	comments, err := suite.service.ListComments(task.ID, manager)
	suite.Require().NoError(err)
	suite.Require().Len(comments, 1)
	assert.Equal(suite.T(), staff.ID, comments[0].AuthorID)
}

// TestTaskServiceTestSuite runs the test suite
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
