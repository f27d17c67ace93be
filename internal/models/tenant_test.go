package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanTierOrdering(t *testing.T) {
	assert.True(t, PlanFree < PlanBasic)
	assert.True(t, PlanBasic < PlanPro)
	assert.True(t, PlanPro < PlanBusiness)
}

func TestPlanTierAllows(t *testing.T) {
	cases := []struct {
		plan     PlanTier
		required PlanTier
		want     bool
	}{
		{PlanFree, PlanFree, true},
		{PlanFree, PlanBasic, false},
		{PlanBasic, PlanBasic, true},
		{PlanBasic, PlanPro, false},
		{PlanPro, PlanBasic, true},
		{PlanBusiness, PlanPro, true},
		{PlanBusiness, PlanBusiness, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.plan.Allows(tc.required),
			"%s.Allows(%s)", tc.plan, tc.required)
	}
}

func TestParsePlanTier(t *testing.T) {
	for _, name := range []string{"free", "basic", "pro", "business"} {
		tier, err := ParsePlanTier(name)
		require.NoError(t, err)
		assert.Equal(t, name, tier.String())
		assert.True(t, tier.Valid())
	}

	_, err := ParsePlanTier("platinum")
	assert.Error(t, err)

	_, err = ParsePlanTier("")
	assert.Error(t, err)
}

func TestPlanTierJSON(t *testing.T) {
	data, err := json.Marshal(PlanPro)
	require.NoError(t, err)
	assert.Equal(t, `"pro"`, string(data))

	var tier PlanTier
	require.NoError(t, json.Unmarshal([]byte(`"business"`), &tier))
	assert.Equal(t, PlanBusiness, tier)

	assert.Error(t, json.Unmarshal([]byte(`"platinum"`), &tier))
}

func TestPlanTierScanValue(t *testing.T) {
	v, err := PlanBasic.Value()
	require.NoError(t, err)
	assert.Equal(t, "basic", v)

	var tier PlanTier
	require.NoError(t, tier.Scan("pro"))
	assert.Equal(t, PlanPro, tier)

	require.NoError(t, tier.Scan([]byte("business")))
	assert.Equal(t, PlanBusiness, tier)

	// 旧数据为NULL时回落到免费套餐
	require.NoError(t, tier.Scan(nil))
	assert.Equal(t, PlanFree, tier)

	assert.Error(t, tier.Scan(123))
	assert.Error(t, tier.Scan("platinum"))
}

func TestTenantJSONIncludesPlanName(t *testing.T) {
	tenant := Tenant{Name: "Acme KTV", Subdomain: "acme", Plan: PlanPro, Status: TenantStatusActive}
	data, err := json.Marshal(&tenant)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "pro", out["plan"])
	assert.Equal(t, "acme", out["subdomain"])
}
