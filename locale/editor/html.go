package editor

// editorHTML is the embedded UI for the bundle editor: a searchable table
// with one row per key and one column per bundle, missing translations
// highlighted.
const editorHTML = `
<!DOCTYPE html>
<html>
<head>
  <title>Translation Bundle Editor</title>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <style>
    * { box-sizing: border-box; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      margin: 0;
      padding: 20px;
      background: #f5f5f5;
    }
    .container {
      max-width: 1400px;
      margin: 0 auto;
      background: white;
      border-radius: 8px;
      box-shadow: 0 2px 10px rgba(0,0,0,0.1);
      overflow: hidden;
    }
    .header { background: #2c3e50; color: white; padding: 20px; }
    .header h1 { margin: 0; font-size: 24px; font-weight: 500; }
    .controls {
      padding: 20px;
      border-bottom: 1px solid #eee;
      display: flex;
      gap: 15px;
      align-items: center;
      flex-wrap: wrap;
    }
    .search-box { flex: 1; min-width: 200px; }
    .search-box input {
      width: 100%;
      padding: 8px 12px;
      border: 1px solid #ddd;
      border-radius: 4px;
      font-size: 14px;
    }
    .save-btn {
      background: #27ae60;
      color: white;
      border: none;
      padding: 8px 16px;
      border-radius: 4px;
      cursor: pointer;
      font-size: 14px;
      font-weight: 500;
    }
    .save-btn:hover { background: #229954; }
    .save-btn:disabled { background: #95a5a6; cursor: not-allowed; }
    .status { color: #27ae60; font-size: 14px; font-weight: 500; }
    .error { color: #e74c3c; }
    .table-container { overflow-x: auto; max-height: 70vh; }
    .bundle-table { width: 100%; border-collapse: collapse; font-size: 14px; }
    .bundle-table th {
      background: #f8f9fa;
      padding: 12px 8px;
      text-align: left;
      border-bottom: 2px solid #dee2e6;
      font-weight: 600;
      position: sticky;
      top: 0;
      z-index: 10;
    }
    .bundle-table td { padding: 8px; border-bottom: 1px solid #eee; vertical-align: top; }
    .bundle-table tr:hover { background: #f8f9fa; }
    .key-cell {
      font-family: 'Monaco', 'Menlo', monospace;
      font-size: 13px;
      color: #2c3e50;
      font-weight: 500;
      min-width: 150px;
      max-width: 250px;
    }
    .value-cell { min-width: 200px; }
    .value-input {
      width: 100%;
      padding: 6px 8px;
      border: 1px solid #ddd;
      border-radius: 4px;
      font-family: inherit;
      font-size: 14px;
    }
    .value-input:focus {
      outline: none;
      border-color: #3498db;
      box-shadow: 0 0 0 2px rgba(52, 152, 219, 0.2);
    }
    .missing { background: #fff3cd; border-color: #ffeaa7; }
    .loading { text-align: center; padding: 40px; color: #7f8c8d; }
    .stats {
      padding: 15px 20px;
      background: #f8f9fa;
      border-top: 1px solid #eee;
      font-size: 14px;
      color: #6c757d;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Translation Bundle Editor</h1>
    </div>

    <div class="controls">
      <div class="search-box">
        <input type="text" id="searchInput" placeholder="Search keys or translations...">
      </div>
      <button class="save-btn" id="saveBtn" onclick="saveBundles()" disabled>Save Changes</button>
      <span class="status" id="status"></span>
    </div>

    <div class="table-container">
      <table class="bundle-table">
        <thead>
          <tr id="tableHeader"><th>Key</th></tr>
        </thead>
        <tbody id="tableBody">
          <tr><td colspan="100" class="loading">Loading bundles...</td></tr>
        </tbody>
      </table>
    </div>

    <div class="stats" id="stats">Loading...</div>
  </div>

  <script>
    let bundleData = null;
    let filteredKeys = [];
    let hasChanges = false;

    window.onload = loadBundles;

    document.getElementById('searchInput').addEventListener('input', function(e) {
      filterKeys(e.target.value);
    });

    async function loadBundles() {
      try {
        const response = await fetch('api/translations');
        if (!response.ok) throw new Error('Failed to load bundles');
        bundleData = await response.json();
        filteredKeys = [...bundleData.keys];
        renderTable();
        updateStats();
      } catch (error) {
        document.getElementById('tableBody').innerHTML =
          '<tr><td colspan="100" class="loading error">Error: ' + error.message + '</td></tr>';
      }
    }

    function renderTable() {
      const header = document.getElementById('tableHeader');
      const body = document.getElementById('tableBody');

      header.innerHTML = '<th>Key</th>';
      bundleData.bundles.forEach(bundle => {
        header.innerHTML += '<th>' + bundle + '</th>';
      });

      body.innerHTML = '';
      filteredKeys.forEach(key => {
        const row = document.createElement('tr');

        const keyCell = document.createElement('td');
        keyCell.className = 'key-cell';
        keyCell.textContent = key;
        row.appendChild(keyCell);

        bundleData.bundles.forEach(bundle => {
          const cell = document.createElement('td');
          cell.className = 'value-cell';

          const input = document.createElement('input');
          input.className = 'value-input';
          input.value = (bundleData.messages[bundle] || {})[key] || '';
          if (!input.value.trim()) input.classList.add('missing');

          input.addEventListener('input', function() {
            hasChanges = true;
            document.getElementById('saveBtn').disabled = false;
            this.classList.toggle('missing', !this.value.trim());
            bundleData.messages[bundle] = bundleData.messages[bundle] || {};
            bundleData.messages[bundle][key] = this.value;
          });

          cell.appendChild(input);
          row.appendChild(cell);
        });

        body.appendChild(row);
      });
    }

    function filterKeys(term) {
      if (!bundleData) return;
      term = term.toLowerCase();
      filteredKeys = bundleData.keys.filter(key => {
        if (key.toLowerCase().includes(term)) return true;
        return bundleData.bundles.some(bundle => {
          const value = (bundleData.messages[bundle] || {})[key] || '';
          return value.toLowerCase().includes(term);
        });
      });
      renderTable();
      updateStats();
    }

    function updateStats() {
      if (!bundleData) return;
      let missing = 0;
      bundleData.keys.forEach(key => {
        bundleData.bundles.forEach(bundle => {
          const value = (bundleData.messages[bundle] || {})[key];
          if (!value || !value.trim()) missing++;
        });
      });
      document.getElementById('stats').textContent =
        'Showing ' + filteredKeys.length + ' of ' + bundleData.keys.length + ' keys | ' +
        bundleData.bundles.length + ' bundles | ' + missing + ' missing translations';
    }

    async function saveBundles() {
      if (!hasChanges) return;
      const saveBtn = document.getElementById('saveBtn');
      const status = document.getElementById('status');

      saveBtn.disabled = true;
      status.textContent = 'Saving...';
      status.className = 'status';

      try {
        const response = await fetch('api/save', {
          method: 'POST',
          headers: { 'Content-Type': 'application/json' },
          body: JSON.stringify(bundleData)
        });
        if (!response.ok) throw new Error('Save failed');

        status.textContent = 'Saved!';
        hasChanges = false;
        setTimeout(() => { status.textContent = ''; }, 3000);
      } catch (error) {
        status.textContent = 'Save failed: ' + error.message;
        status.className = 'status error';
      } finally {
        saveBtn.disabled = !hasChanges;
      }
    }

    window.addEventListener('beforeunload', function(e) {
      if (hasChanges) {
        e.preventDefault();
        e.returnValue = '';
      }
    });
  </script>
</body>
</html>
`
