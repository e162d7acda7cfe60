package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/itiky/game-console/model"
)

func Test_CSV_Tournament(t *testing.T) {
	tournament := model.Tournament{
		Id:          "6b2a3c4e-8f1d-4a5b-9c7e-0d1f2e3a4b5c",
		Title:       "Weekly, Cup",
		Category:    2,
		SortOrder:   model.DescendingSortOrder,
		Operator:    model.BestOperator,
		MaxSize:     100,
		CanEnter:    true,
		Duration:    3600,
		CreateTime:  1700000000,
		StartTime:   1700000000,
		StartActive: 1700000000,
		EndActive:   1700003600,
		Metadata:    model.Metadata{"tier": "gold"},
	}

	buf := new(bytes.Buffer)
	require.NoError(t, CSV(buf, []model.Tournament{tournament}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "id,title,description,category,sort_order,operator,size,max_size,max_num_score,can_enter,duration,create_time,start_time,end_time,start_active,end_active,next_reset,metadata", lines[0])
	require.Equal(t, `6b2a3c4e-8f1d-4a5b-9c7e-0d1f2e3a4b5c,"Weekly, Cup",,2,desc,best,0,100,0,true,3600,1700000000,1700000000,0,1700000000,1700003600,0,"{""tier"":""gold""}"`, lines[1])
}

func Test_CSV_Embedded(t *testing.T) {
	type row struct {
		model.StorageFilter
		Cursor  string   `json:"cursor,omitempty"`
		Skipped string   `json:"-"`
		Tags    []string `json:"tags"`
		hidden  int
	}

	buf := new(bytes.Buffer)
	require.NoError(t, CSV(buf, []*row{{StorageFilter: model.StorageFilter{Collection: "inventory"}, Cursor: "c1"}, nil}))
	require.Equal(t, "user_id,collection,key,cursor,tags\n,inventory,,c1,\n,,,,\n", buf.String())

	require.Error(t, CSV(buf, []int{1}))
}

func Test_JSON(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, JSON(buf, []model.UserRequest{{Id: "u1"}}))
	require.Equal(t, "[\n  {\n    \"id\": \"u1\"\n  }\n]\n", buf.String())

	buf.Reset()
	require.NoError(t, JSON[model.User](buf, nil))
	require.Equal(t, "[]\n", buf.String())
}

func Test_FormatDuration(t *testing.T) {
	testCases := map[int64]string{
		0:                        "",
		59:                       "59 seconds",
		3600:                     "1 hours",
		7*24*3600 + 90:           "7 days, 1 minutes, 30 seconds",
		2*24*3600 + 3*3600 + 240: "2 days, 3 hours, 4 minutes",
	}

	for seconds, expected := range testCases {
		require.Equal(t, expected, FormatDuration(seconds), "seconds: %d", seconds)
	}
}

func Test_FormatDate(t *testing.T) {
	require.Equal(t, "2023-11-14 22:13:20 UTC", FormatDate(1700000000, time.UTC))

	loc := time.FixedZone("CET", 3600)
	require.Equal(t, "2023-11-14 23:13:20 CET", FormatDate(1700000000, loc))
}

func Test_DecodeStorageObjects_JSON(t *testing.T) {
	data := `[
		{"collection":"inventory","key":"slot1","value":"{\"a\": 1}","permission_read":2},
		{"collection":"profile","key":"main","user_id":"6b2a3c4e-8f1d-4a5b-9c7e-0d1f2e3a4b5c","value":{"b":true}}
	]`

	objects, err := DecodeStorageObjects("import_0.JSON", strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, objects, 2)
	require.Equal(t, `{"a":1}`, objects[0].Value)
	require.Equal(t, model.SystemUserID, objects[0].UserId)
	require.Equal(t, 2, objects[0].PermissionRead)
	require.Equal(t, `{"b":true}`, objects[1].Value)

	_, err = DecodeStorageObjects("import_0.json", strings.NewReader(`[{"collection":"inventory","value":"{}"}]`))
	require.Error(t, err)

	_, err = DecodeStorageObjects("import_0.xml", strings.NewReader(data))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func Test_DecodeStorageObjects_CSV(t *testing.T) {
	objects := []model.StorageObject{
		{Collection: "inventory", Key: "slot1", UserId: model.SystemUserID, Value: `{"a":1}`, PermissionRead: 1, PermissionWrite: 1},
		{Collection: "profile", Key: "main", UserId: model.SystemUserID, Value: `{}`},
	}

	// Exported CSV can be imported back
	buf := new(bytes.Buffer)
	require.NoError(t, CSV(buf, objects))

	decoded, err := DecodeStorageObjects("import_1.csv", buf)
	require.NoError(t, err)
	require.Equal(t, objects, decoded)

	_, err = DecodeStorageObjects("import_1.csv", strings.NewReader("collection,key\ninventory,slot1\n"))
	require.Error(t, err)

	_, err = DecodeStorageObjects("import_1.csv", strings.NewReader("collection,key,value,permission_read\ninventory,slot1,{},x\n"))
	require.Error(t, err)
}

func Test_JSON_Decodable(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, JSON(buf, []model.Tournament{{Id: "t1", Metadata: model.Metadata{}}}))

	var decoded []model.Tournament
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "t1", decoded[0].Id)
}

func Test_YAML(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, YAML(buf, []model.StorageFilter{{Collection: "inventory"}}))
	require.Equal(t, "- collection: inventory\n", buf.String())

	buf.Reset()
	require.NoError(t, YAML[model.User](buf, nil))
	require.Equal(t, "[]\n", buf.String())
}
