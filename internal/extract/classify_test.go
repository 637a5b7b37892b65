package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JakeFAU/govbills-crawler/internal/record"
)

func TestBillType(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input string
		want  record.BillType
	}{
		{"https://www.congress.gov/bill/118th-congress/house-bill/1234", record.HouseBill},
		{"https://www.congress.gov/bill/118th-congress/senate-joint-resolution/7", record.SenateJointResolution},
		{"https://www.congress.gov/bill/118th-congress/house-concurrent-resolution/3", record.HouseConcurrentResolution},
		{"https://www.govtrack.us/congress/bills/117/hr42", record.HouseBill},
		{"https://www.govtrack.us/congress/bills/117/hres42", record.HouseResolution},
		{"https://www.govtrack.us/congress/bills/117/s5", record.SenateBill},
		{"https://www.govtrack.us/congress/bills/117/sconres12", record.SenateConcurrentResolution},
		{"H.R. 1234", record.HouseBill},
		{"H.Res. 9", record.HouseResolution},
		{"S.J.Res. 4", record.SenateJointResolution},
		{"S. 5", record.SenateBill},
		{"https://www.govtrack.us/congress/bills/subjects", record.BillGeneric},
		{"", record.BillGeneric},
		{"Something else", record.BillGeneric},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, BillType(tc.input))
		})
	}
}

func TestBillTypeFromCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, record.HouseJointResolution, BillTypeFromCode("hjres"))
	assert.Equal(t, record.SenateBill, BillTypeFromCode("S"))
	assert.Equal(t, record.BillGeneric, BillTypeFromCode("xyz"))
}

func TestActionType(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		title string
		url   string
		want  record.ActionType
	}{
		{"executive order title", "Executive Order 14001", "", record.ExecutiveOrder},
		{"memorandum title", "Presidential Memorandum on Energy", "", record.PresidentialMemorandum},
		{"proclamation title", "A Proclamation on Flag Day", "", record.Proclamation},
		{"nsm title", "National Security Memorandum on Cyber", "", record.NationalSecurityMemorandum},
		{"url only", "Untitled", "https://www.whitehouse.gov/presidential-actions/2025/01/executive-order-on-x/", record.ExecutiveOrder},
		{"memorandum url", "", "https://www.whitehouse.gov/presidential-actions/2025/01/memorandum-for-y/", record.PresidentialMemorandum},
		{"default", "Remarks", "https://www.whitehouse.gov/briefings/", record.PresidentialAction},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ActionType(tc.title, tc.url))
		})
	}
}

func TestActionNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "14001", ActionNumber("Executive Order 14001"))
	assert.Equal(t, "10522", ActionNumber("Proclamation: 10522 on Something"))
	assert.Equal(t, "12", ActionNumber("nsm 12"))
	assert.Equal(t, "", ActionNumber("Executive Order on Protecting Workers"))
	assert.Equal(t, "", ActionNumber("Geo 12"))
}
