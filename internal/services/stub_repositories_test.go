package services

import (
	"sort"
	"time"

	"gym_admin_backend/internal/models"
	"gym_admin_backend/internal/repositories"
)

// fakeTxRunner runs the transactional function directly. The in-memory
// repositories below ignore the executor, so services under test behave the
// same as against a real database, minus atomicity.
type fakeTxRunner struct{}

func (fakeTxRunner) RunTx(fn func(executor repositories.SQLExecutor) error) error {
	return fn(nil)
}

// --- members ---

type fakeMemberRepo struct {
	members map[int64]*models.Member
	nextID  int64
	numbers map[string]bool
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: map[int64]*models.Member{}, numbers: map[string]bool{}}
}

func (r *fakeMemberRepo) put(m models.Member) *models.Member {
	if m.ID == 0 {
		r.nextID++
		m.ID = r.nextID
	} else if m.ID > r.nextID {
		r.nextID = m.ID
	}
	r.members[m.ID] = &m
	r.numbers[m.MembershipNumber] = true
	return &m
}

func (r *fakeMemberRepo) CreateMember(_ repositories.SQLExecutor, member *models.Member) (int64, error) {
	if r.numbers[member.MembershipNumber] {
		return 0, repositories.ErrDuplicateKey
	}
	stored := r.put(*member)
	member.ID = stored.ID
	return member.ID, nil
}

func (r *fakeMemberRepo) GetMemberByID(id int64) (*models.Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *member
	return &copied, nil
}

func (r *fakeMemberRepo) GetMemberByMembershipNumber(number string) (*models.Member, error) {
	for _, member := range r.members {
		if member.MembershipNumber == number {
			copied := *member
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeMemberRepo) GetMembers(page, pageSize int, searchTerm *string, activeOnly bool) ([]models.Member, int, error) {
	result := []models.Member{}
	for _, member := range r.members {
		if activeOnly && !member.IsActive {
			continue
		}
		result = append(result, *member)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (r *fakeMemberRepo) UpdateMember(_ repositories.SQLExecutor, member *models.Member) error {
	if _, ok := r.members[member.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *member
	r.members[member.ID] = &copied
	return nil
}

func (r *fakeMemberRepo) DeactivateMember(_ repositories.SQLExecutor, id int64) error {
	member, ok := r.members[id]
	if !ok {
		return repositories.ErrNotFound
	}
	member.IsActive = false
	return nil
}

// --- plans ---

type fakePlanRepo struct {
	plans  map[int64]*models.Plan
	nextID int64
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[int64]*models.Plan{}}
}

func (r *fakePlanRepo) put(p models.Plan) *models.Plan {
	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
	} else if p.ID > r.nextID {
		r.nextID = p.ID
	}
	r.plans[p.ID] = &p
	return &p
}

func (r *fakePlanRepo) CreatePlan(_ repositories.SQLExecutor, plan *models.Plan) (int64, error) {
	stored := r.put(*plan)
	plan.ID = stored.ID
	return plan.ID, nil
}

func (r *fakePlanRepo) GetPlanByID(id int64) (*models.Plan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *plan
	return &copied, nil
}

func (r *fakePlanRepo) GetPlans(activeOnly bool) ([]models.Plan, error) {
	result := []models.Plan{}
	for _, plan := range r.plans {
		if activeOnly && !plan.IsActive {
			continue
		}
		result = append(result, *plan)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakePlanRepo) UpdatePlan(_ repositories.SQLExecutor, plan *models.Plan) error {
	if _, ok := r.plans[plan.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *plan
	r.plans[plan.ID] = &copied
	return nil
}

func (r *fakePlanRepo) DeactivatePlan(_ repositories.SQLExecutor, id int64) error {
	plan, ok := r.plans[id]
	if !ok {
		return repositories.ErrNotFound
	}
	plan.IsActive = false
	return nil
}

// --- memberships ---

type fakeMembershipRepo struct {
	memberships map[int64]*models.Membership
	nextID      int64
	memberRepo  *fakeMemberRepo
	planRepo    *fakePlanRepo
}

func newFakeMembershipRepo(memberRepo *fakeMemberRepo, planRepo *fakePlanRepo) *fakeMembershipRepo {
	return &fakeMembershipRepo{
		memberships: map[int64]*models.Membership{},
		memberRepo:  memberRepo,
		planRepo:    planRepo,
	}
}

func (r *fakeMembershipRepo) attach(ms models.Membership) models.Membership {
	if member, err := r.memberRepo.GetMemberByID(ms.MemberID); err == nil {
		ms.Member = member
	}
	if plan, err := r.planRepo.GetPlanByID(ms.PlanID); err == nil {
		ms.Plan = plan
	}
	return ms
}

func (r *fakeMembershipRepo) put(ms models.Membership) *models.Membership {
	if ms.ID == 0 {
		r.nextID++
		ms.ID = r.nextID
	} else if ms.ID > r.nextID {
		r.nextID = ms.ID
	}
	ms.Member = nil
	ms.Plan = nil
	r.memberships[ms.ID] = &ms
	return &ms
}

func (r *fakeMembershipRepo) CreateMembership(_ repositories.SQLExecutor, membership *models.Membership) (int64, error) {
	stored := r.put(*membership)
	membership.ID = stored.ID
	return membership.ID, nil
}

func (r *fakeMembershipRepo) GetMembershipByID(id int64) (*models.Membership, error) {
	ms, ok := r.memberships[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	attached := r.attach(*ms)
	return &attached, nil
}

func (r *fakeMembershipRepo) GetMemberships(filters models.MembershipFilters) ([]models.Membership, int, error) {
	result := []models.Membership{}
	for _, ms := range r.memberships {
		if filters.MemberID != nil && ms.MemberID != *filters.MemberID {
			continue
		}
		if filters.PlanID != nil && ms.PlanID != *filters.PlanID {
			continue
		}
		if filters.Active != nil && ms.IsActive != *filters.Active {
			continue
		}
		result = append(result, r.attach(*ms))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (r *fakeMembershipRepo) FindActiveMembership(_ repositories.SQLExecutor, memberID int64, asOf time.Time, _ bool) (*models.Membership, error) {
	dayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	var best *models.Membership
	for _, ms := range r.memberships {
		if ms.MemberID != memberID || !ms.IsActive || ms.EndDate.Before(dayStart) {
			continue
		}
		if best == nil || ms.StartDate.After(best.StartDate) {
			best = ms
		}
	}
	if best == nil {
		return nil, repositories.ErrNotFound
	}
	attached := r.attach(*best)
	return &attached, nil
}

func (r *fakeMembershipRepo) DeactivateAllActive(_ repositories.SQLExecutor, memberID int64) error {
	for _, ms := range r.memberships {
		if ms.MemberID == memberID && ms.IsActive {
			ms.IsActive = false
		}
	}
	return nil
}

func (r *fakeMembershipRepo) IncrementClassesUsed(_ repositories.SQLExecutor, membershipID int64, delta int) error {
	ms, ok := r.memberships[membershipID]
	if !ok {
		return repositories.ErrNotFound
	}
	ms.ClassesUsed += delta
	if ms.ClassesUsed < 0 {
		ms.ClassesUsed = 0
	}
	return nil
}

func (r *fakeMembershipRepo) UpdateMembership(_ repositories.SQLExecutor, membership *models.Membership) error {
	if _, ok := r.memberships[membership.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.put(*membership)
	return nil
}

func (r *fakeMembershipRepo) DeactivateMembership(_ repositories.SQLExecutor, id int64) error {
	ms, ok := r.memberships[id]
	if !ok {
		return repositories.ErrNotFound
	}
	ms.IsActive = false
	return nil
}

// --- visits ---

type fakeVisitRepo struct {
	visits     map[int64]*models.Visit
	nextID     int64
	memberRepo *fakeMemberRepo
}

func newFakeVisitRepo(memberRepo *fakeMemberRepo) *fakeVisitRepo {
	return &fakeVisitRepo{visits: map[int64]*models.Visit{}, memberRepo: memberRepo}
}

func (r *fakeVisitRepo) CreateVisit(_ repositories.SQLExecutor, visit *models.Visit) (int64, error) {
	r.nextID++
	visit.ID = r.nextID
	copied := *visit
	copied.Member = nil
	r.visits[visit.ID] = &copied
	return visit.ID, nil
}

func (r *fakeVisitRepo) GetVisitByID(_ repositories.SQLExecutor, id int64) (*models.Visit, error) {
	visit, ok := r.visits[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *visit
	if member, err := r.memberRepo.GetMemberByID(copied.MemberID); err == nil {
		copied.Member = member
	}
	return &copied, nil
}

func (r *fakeVisitRepo) GetVisits(filters models.VisitFilters) ([]models.Visit, int, error) {
	result := []models.Visit{}
	for _, visit := range r.visits {
		if filters.MemberID != nil && visit.MemberID != *filters.MemberID {
			continue
		}
		if filters.DateFrom != nil && visit.VisitDate.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && !visit.VisitDate.Before(*filters.DateTo) {
			continue
		}
		result = append(result, *visit)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (r *fakeVisitRepo) UpdateVisitNotes(_ repositories.SQLExecutor, id int64, notes *string) error {
	visit, ok := r.visits[id]
	if !ok {
		return repositories.ErrNotFound
	}
	visit.Notes = notes
	return nil
}

func (r *fakeVisitRepo) DeleteVisit(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.visits[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.visits, id)
	return nil
}

// --- users ---

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (r *fakeUserRepo) put(u models.User) *models.User {
	if u.ID == 0 {
		r.nextID++
		u.ID = r.nextID
	} else if u.ID > r.nextID {
		r.nextID = u.ID
	}
	r.users[u.ID] = &u
	return &u
}

func (r *fakeUserRepo) CreateUser(_ repositories.SQLExecutor, user *models.User) (int64, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return 0, repositories.ErrDuplicateKey
		}
	}
	stored := r.put(*user)
	user.ID = stored.ID
	return user.ID, nil
}

func (r *fakeUserRepo) GetUserByID(id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) GetUsers() ([]models.User, error) {
	result := []models.User{}
	for _, user := range r.users {
		result = append(result, *user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeUserRepo) UpdateUser(_ repositories.SQLExecutor, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountActiveAdmins(_ repositories.SQLExecutor) (int, error) {
	count := 0
	for _, user := range r.users {
		if user.Role == models.RoleAdmin && user.IsActive {
			count++
		}
	}
	return count, nil
}

// --- staff ---

type fakeStaffRepo struct {
	staff         map[int64]*models.Staff
	sessions      map[int64]*models.StaffSession
	nextStaffID   int64
	nextSessionID int64
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{staff: map[int64]*models.Staff{}, sessions: map[int64]*models.StaffSession{}}
}

func (r *fakeStaffRepo) CreateStaff(_ repositories.SQLExecutor, staff *models.Staff) (int64, error) {
	r.nextStaffID++
	staff.ID = r.nextStaffID
	copied := *staff
	r.staff[staff.ID] = &copied
	return staff.ID, nil
}

func (r *fakeStaffRepo) GetStaffByID(id int64) (*models.Staff, error) {
	staff, ok := r.staff[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *staff
	return &copied, nil
}

func (r *fakeStaffRepo) GetStaff(staffType *string, activeOnly bool, page, pageSize int) ([]models.Staff, int, error) {
	result := []models.Staff{}
	for _, staff := range r.staff {
		if staffType != nil && *staffType != "" && staff.StaffType != *staffType {
			continue
		}
		if activeOnly && !staff.IsActive {
			continue
		}
		result = append(result, *staff)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (r *fakeStaffRepo) UpdateStaff(_ repositories.SQLExecutor, staff *models.Staff) error {
	if _, ok := r.staff[staff.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *staff
	r.staff[staff.ID] = &copied
	return nil
}

func (r *fakeStaffRepo) DeactivateStaff(_ repositories.SQLExecutor, id int64) error {
	staff, ok := r.staff[id]
	if !ok {
		return repositories.ErrNotFound
	}
	staff.IsActive = false
	return nil
}

func (r *fakeStaffRepo) CreateSession(_ repositories.SQLExecutor, session *models.StaffSession) (int64, error) {
	r.nextSessionID++
	session.ID = r.nextSessionID
	copied := *session
	copied.Staff = nil
	r.sessions[session.ID] = &copied
	return session.ID, nil
}

func (r *fakeStaffRepo) GetSessionByID(id int64) (*models.StaffSession, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *session
	if staff, err := r.GetStaffByID(copied.StaffID); err == nil {
		copied.Staff = staff
	}
	return &copied, nil
}

func (r *fakeStaffRepo) GetSessions(filters models.SessionFilters) ([]models.StaffSession, int, error) {
	result := []models.StaffSession{}
	for _, session := range r.sessions {
		if filters.StaffID != nil && session.StaffID != *filters.StaffID {
			continue
		}
		if filters.OpenOnly && session.EndTime != nil {
			continue
		}
		if filters.DateFrom != nil && session.StartTime.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && !session.StartTime.Before(*filters.DateTo) {
			continue
		}
		result = append(result, *session)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (r *fakeStaffRepo) UpdateSession(_ repositories.SQLExecutor, session *models.StaffSession) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *session
	copied.Staff = nil
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeStaffRepo) DeleteSession(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.sessions[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *fakeStaffRepo) GetCompletedSessionsForPeriod(staffType string, from, to time.Time) ([]models.StaffSession, error) {
	result := []models.StaffSession{}
	for _, session := range r.sessions {
		staff, ok := r.staff[session.StaffID]
		if !ok || staff.StaffType != staffType || !staff.IsActive {
			continue
		}
		if session.EndTime == nil {
			continue
		}
		if session.StartTime.Before(from) || !session.StartTime.Before(to) {
			continue
		}
		copied := *session
		staffCopy := *staff
		copied.Staff = &staffCopy
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// --- cash ---

type fakeCashRepo struct {
	transactions map[int64]*models.CashTransaction
	nextID       int64
}

func newFakeCashRepo() *fakeCashRepo {
	return &fakeCashRepo{transactions: map[int64]*models.CashTransaction{}}
}

func (r *fakeCashRepo) CreateTransaction(_ repositories.SQLExecutor, txn *models.CashTransaction) (int64, error) {
	r.nextID++
	txn.ID = r.nextID
	copied := *txn
	r.transactions[txn.ID] = &copied
	return txn.ID, nil
}

func (r *fakeCashRepo) GetTransactionByID(id int64) (*models.CashTransaction, error) {
	txn, ok := r.transactions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *txn
	return &copied, nil
}

func (r *fakeCashRepo) GetTransactions(filters models.CashFilters) ([]models.CashTransaction, int, error) {
	result := []models.CashTransaction{}
	for _, txn := range r.transactions {
		if filters.TxnType != nil && *filters.TxnType != "" && txn.TxnType != *filters.TxnType {
			continue
		}
		if filters.DateFrom != nil && txn.TxnDate.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && !txn.TxnDate.Before(*filters.DateTo) {
			continue
		}
		result = append(result, *txn)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func (r *fakeCashRepo) UpdateTransaction(_ repositories.SQLExecutor, txn *models.CashTransaction) error {
	if _, ok := r.transactions[txn.ID]; !ok {
		return repositories.ErrNotFound
	}
	copied := *txn
	r.transactions[txn.ID] = &copied
	return nil
}

func (r *fakeCashRepo) DeleteTransaction(_ repositories.SQLExecutor, id int64) error {
	if _, ok := r.transactions[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.transactions, id)
	return nil
}

func (r *fakeCashRepo) GetTransactionsForPeriod(from, to time.Time) ([]models.CashTransaction, error) {
	result := []models.CashTransaction{}
	for _, txn := range r.transactions {
		if txn.TxnDate.Before(from) || !txn.TxnDate.Before(to) {
			continue
		}
		result = append(result, *txn)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
