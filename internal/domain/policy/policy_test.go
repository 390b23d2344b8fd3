package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/policy"
)

func actor(id string, role entity.Role) *entity.Actor {
	return &entity.Actor{UserID: id, Role: role}
}

func TestAuthorize_SinActor_SiempreUnauthorized(t *testing.T) {
	target := &entity.Beneficiary{CreatedByID: "u1", AssignedToID: "u1"}
	for _, a := range policy.Actions() {
		for _, who := range []*entity.Actor{nil, {}, {UserID: "u1"}, {UserID: "u1", Role: "ROOT"}} {
			d := policy.Authorize(who, a, target)
			assert.False(t, d.Allowed, "acción %s", a)
			assert.ErrorIs(t, d.Err(), domain.ErrUnauthorized)
		}
	}
}

func TestAuthorize_AdminsPermitenTodo(t *testing.T) {
	outOfScope := &entity.Case{CreatedByID: "otro"}
	for _, role := range []entity.Role{entity.RoleSuperAdmin, entity.RoleAdmin} {
		for _, a := range policy.Actions() {
			assert.True(t, policy.Authorize(actor("adm", role), a, outOfScope).Allowed, "%s %s", role, a)
		}
	}
}

// Tabla completa para los roles con alcance: qué resulta con un objetivo propio y uno ajeno.
func TestAuthorize_RolesConAlcance(t *testing.T) {
	type expect struct{ own, foreign bool }
	creatorRole := map[policy.Action]expect{
		policy.CreateBeneficiary:  {true, true},
		policy.ReadBeneficiary:    {true, false},
		policy.UpdateBeneficiary:  {true, false},
		policy.ArchiveBeneficiary: {false, false},
		policy.ListBeneficiaries:  {true, false},
		policy.CreateCase:         {true, true},
		policy.ReadCase:           {true, false},
		policy.UpdateCase:         {true, false},
		policy.DeleteCase:         {false, false},
		policy.ListCases:          {true, false},
		policy.CreateService:      {true, true},
		policy.ReadService:        {true, false},
		policy.UpdateService:      {true, false},
		policy.DeleteService:      {false, false},
		policy.ListServices:       {true, false},
		policy.ListAuditLog:       {false, false},
		policy.ReadDashboard:      {true, false},

		policy.ExportBeneficiaryReport: {true, false},
	}
	volunteer := map[policy.Action]expect{}
	for a, e := range creatorRole {
		volunteer[a] = e
	}
	for _, a := range []policy.Action{
		policy.CreateBeneficiary, policy.UpdateBeneficiary,
		policy.CreateCase, policy.UpdateCase,
		policy.CreateService, policy.UpdateService,
	} {
		volunteer[a] = expect{false, false}
	}

	cases := map[entity.Role]map[policy.Action]expect{
		entity.RoleStaff:       creatorRole,
		entity.RoleFieldWorker: creatorRole,
		entity.RoleVolunteer:   volunteer,
	}
	own := &entity.Beneficiary{CreatedByID: "otro", AssignedToID: "me"}
	foreign := &entity.Beneficiary{CreatedByID: "otro", AssignedToID: "otro"}

	for role, table := range cases {
		require.Len(t, table, len(policy.Actions()), "la tabla de %s debe cubrir todas las acciones", role)
		for a, e := range table {
			me := actor("me", role)
			gotOwn := policy.Authorize(me, a, own)
			gotForeign := policy.Authorize(me, a, foreign)
			assert.Equal(t, e.own, gotOwn.Allowed, "%s %s propio", role, a)
			assert.Equal(t, e.foreign, gotForeign.Allowed, "%s %s ajeno", role, a)
			if !gotForeign.Allowed {
				assert.ErrorIs(t, gotForeign.Err(), domain.ErrForbidden)
			}
		}
	}
}

func TestAuthorize_AlcancePorEntidad(t *testing.T) {
	me := actor("me", entity.RoleStaff)

	assert.True(t, policy.Authorize(me, policy.ReadBeneficiary, &entity.Beneficiary{CreatedByID: "me", AssignedToID: "x"}).Allowed)
	assert.True(t, policy.Authorize(me, policy.ReadCase, &entity.Case{CreatedByID: "x", AssigneeIDs: []string{"y", "me"}}).Allowed)
	assert.False(t, policy.Authorize(me, policy.ReadCase, &entity.Case{CreatedByID: "x", AssigneeIDs: []string{"y"}}).Allowed)
	assert.True(t, policy.Authorize(me, policy.ReadService, &entity.Service{CreatedByID: "x", ProvidedByID: "me"}).Allowed)
	assert.False(t, policy.Authorize(me, policy.UpdateService, &entity.Service{CreatedByID: "x", ProvidedByID: "y"}).Allowed)
}

func TestCan_RolSinCapacidad(t *testing.T) {
	d := policy.Can(actor("v1", entity.RoleVolunteer), policy.UpdateBeneficiary)
	assert.False(t, d.Allowed)
	assert.Equal(t, policy.ReasonMissingCapability, d.Reason)
	assert.ErrorIs(t, d.Err(), domain.ErrForbidden)

	assert.True(t, policy.Can(actor("v1", entity.RoleVolunteer), policy.ReadBeneficiary).Allowed)
}

func TestListScope(t *testing.T) {
	s, err := policy.ListScope(actor("a", entity.RoleAdmin), policy.ListCases)
	require.NoError(t, err)
	assert.True(t, s.Unrestricted)

	s, err = policy.ListScope(actor("v1", entity.RoleVolunteer), policy.ListServices)
	require.NoError(t, err)
	assert.False(t, s.Unrestricted)
	assert.Equal(t, "v1", s.ActorID)

	_, err = policy.ListScope(actor("s1", entity.RoleStaff), policy.ListAuditLog)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = policy.ListScope(nil, policy.ListBeneficiaries)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
